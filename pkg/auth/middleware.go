package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/pkg/handlers"
	"github.com/JaimeStill/moodai/pkg/routes"
)

type contextKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// UserID returns the authenticated user ID from ctx.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(contextKey{}).(uuid.UUID)
	return id, ok
}

// Require wraps a handler so it only runs for requests carrying a valid token,
// read from the session cookie or an "Authorization: Bearer" header. A cookie
// that fails to parse does not mask a valid bearer token.
func (t *Tokens) Require(logger *slog.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidates := t.tokensFrom(r)
		if len(candidates) == 0 {
			handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
			return
		}

		var err error
		for _, token := range candidates {
			var id uuid.UUID
			if id, err = t.Parse(token); err == nil {
				next(w, r.WithContext(WithUserID(r.Context(), id)))
				return
			}
		}
		handlers.RespondError(w, logger, http.StatusUnauthorized, err)
	}
}

// tokensFrom returns the cookie token then the bearer token, skipping absent ones.
func (t *Tokens) tokensFrom(r *http.Request) []string {
	var tokens []string
	if c, err := r.Cookie(t.cookie); err == nil && c.Value != "" {
		tokens = append(tokens, c.Value)
	}
	if h := r.Header.Get("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok && strings.TrimSpace(after) != "" {
			tokens = append(tokens, strings.TrimSpace(after))
		}
	}
	return tokens
}

// Guard adapts Require to routes.Guard for use with routes.Secure.
func (t *Tokens) Guard(logger *slog.Logger) routes.Guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return t.Require(logger, next)
	}
}

// RequestUser returns the authenticated user ID for r, writing a 401 and
// returning false when the request did not pass through Require.
func RequestUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	id, ok := UserID(r.Context())
	if !ok {
		handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
	}
	return id, ok
}
