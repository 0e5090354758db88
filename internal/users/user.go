// Package users manages accounts and password sign-in.
package users

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Account field bounds.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 6
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// User is an account without its password hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupCommand carries the fields for creating an account.
type SignupCommand struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginCommand carries sign-in credentials.
type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResult is the response body of a successful signup.
type SignupResult struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
}

// LoginResult is the response body of a successful login.
type LoginResult struct {
	Message  string    `json:"message"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Normalize trims the command fields, lower-cases the email, and validates the result.
func (c *SignupCommand) Normalize() error {
	c.Username = strings.TrimSpace(c.Username)
	c.Email = NormalizeEmail(c.Email)

	if c.Username == "" || c.Email == "" || c.Password == "" {
		return fmt.Errorf("%w: all fields are required", ErrInvalid)
	}

	if n := utf8.RuneCountInString(c.Username); n < MinUsernameLen || n > MaxUsernameLen {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalid, MinUsernameLen, MaxUsernameLen)
	}

	if !emailPattern.MatchString(c.Email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalid)
	}

	if len(c.Password) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalid, MinPasswordLen)
	}

	return nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
