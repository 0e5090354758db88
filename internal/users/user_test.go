package users_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/JaimeStill/moodai/internal/users"
)

func TestSignupNormalize(t *testing.T) {
	cmd := users.SignupCommand{
		Username: "  river ",
		Email:    " River@Example.COM ",
		Password: "secret1",
	}

	if err := cmd.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cmd.Username != "river" {
		t.Errorf("Username = %q, want %q", cmd.Username, "river")
	}
	if cmd.Email != "river@example.com" {
		t.Errorf("Email = %q, want %q", cmd.Email, "river@example.com")
	}
}

func TestSignupNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		cmd  users.SignupCommand
		msg  string
	}{
		{"missing username", users.SignupCommand{Email: "a@b.co", Password: "secret1"}, "all fields are required"},
		{"missing email", users.SignupCommand{Username: "river", Password: "secret1"}, "all fields are required"},
		{"missing password", users.SignupCommand{Username: "river", Email: "a@b.co"}, "all fields are required"},
		{"short username", users.SignupCommand{Username: "ab", Email: "a@b.co", Password: "secret1"}, "username must be 3-30"},
		{"long username", users.SignupCommand{Username: strings.Repeat("x", 31), Email: "a@b.co", Password: "secret1"}, "username must be 3-30"},
		{"bad email", users.SignupCommand{Username: "river", Email: "river@example", Password: "secret1"}, "invalid email"},
		{"email with space", users.SignupCommand{Username: "river", Email: "ri ver@example.com", Password: "secret1"}, "invalid email"},
		{"short password", users.SignupCommand{Username: "river", Email: "a@b.co", Password: "12345"}, "at least 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Normalize()
			if !errors.Is(err, users.ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.msg)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{users.ErrNotFound, http.StatusNotFound},
		{users.ErrEmailTaken, http.StatusConflict},
		{users.ErrUsernameTaken, http.StatusConflict},
		{users.ErrInvalid, http.StatusBadRequest},
		{users.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := users.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
