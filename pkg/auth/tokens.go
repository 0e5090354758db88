// Package auth issues and verifies signed session tokens and provides the
// HTTP middleware that resolves the calling user from them.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated indicates the request carries no session token.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidToken indicates the token is malformed, expired, or signed with another key.
	ErrInvalidToken = errors.New("token expired or invalid")
)

// Claims is the JWT payload carried in the session cookie.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Tokens signs and parses HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	cookie string
	secure bool
	now    func() time.Time
}

// NewTokens creates a Tokens from a finalized Config.
func NewTokens(cfg *Config) *Tokens {
	return &Tokens{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTLDuration(),
		cookie: cfg.CookieName,
		secure: cfg.CookieSecure,
		now:    time.Now,
	}
}

// Issue returns a signed token for userID.
func (t *Tokens) Issue(userID uuid.UUID) (string, error) {
	now := t.now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a signed token and returns the user ID it carries.
func (t *Tokens) Parse(token string) (uuid.UUID, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(
		token, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// SetCookie writes the session cookie carrying token.
func (t *Tokens) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(t.ttl.Seconds()),
	})
}

// ClearCookie expires the session cookie.
func (t *Tokens) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.cookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		MaxAge:   -1,
	})
}
