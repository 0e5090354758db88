package auth_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/pkg/auth"
)

func tokens(t *testing.T, secret string) *auth.Tokens {
	t.Helper()
	cfg := auth.Config{Secret: secret}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	return auth.NewTokens(&cfg)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("MOODAI_AUTH_COOKIE_SECURE", "true")

	cfg := auth.Config{Secret: "s"}
	if err := cfg.Finalize(&auth.Env{CookieSecure: "MOODAI_AUTH_COOKIE_SECURE"}); err != nil {
		t.Fatal(err)
	}
	if cfg.TokenTTL != "168h" || cfg.CookieName != "token" || !cfg.CookieSecure {
		t.Errorf("finalized: %+v", cfg)
	}

	for name, bad := range map[string]auth.Config{
		"no secret":    {},
		"bad ttl":      {Secret: "s", TokenTTL: "weekly"},
		"negative ttl": {Secret: "s", TokenTTL: "-1h"},
	} {
		if err := bad.Finalize(nil); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestIssueParse(t *testing.T) {
	tk := tokens(t, "secret-a")
	id := uuid.New()

	signed, err := tk.Issue(id)
	if err != nil {
		t.Fatal(err)
	}

	got, err := tk.Parse(signed)
	if err != nil || got != id {
		t.Fatalf("Parse = %v, %v; want %v", got, err, id)
	}

	if _, err := tokens(t, "secret-b").Parse(signed); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("foreign secret: %v", err)
	}
	if _, err := tk.Parse(signed + "x"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("tampered: %v", err)
	}
}

func TestRequire(t *testing.T) {
	tk := tokens(t, "secret")
	id := uuid.New()
	signed, _ := tk.Issue(id)
	stale, _ := tokens(t, "rotated").Issue(id)

	var seen uuid.UUID
	h := tk.Guard(discard())(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: signed}) }, http.StatusNoContent},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+signed) }, http.StatusNoContent},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"stale cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: stale}) }, http.StatusUnauthorized},
		{"stale cookie with bearer", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "token", Value: stale})
			r.Header.Set("Authorization", "Bearer "+signed)
		}, http.StatusNoContent},
		{"cookie with garbage bearer", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "token", Value: signed})
			r.Header.Set("Authorization", "Bearer nope")
		}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = uuid.Nil
			req := httptest.NewRequest(http.MethodGet, "/history", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusNoContent && seen != id {
				t.Errorf("user id: got %v, want %v", seen, id)
			}
		})
	}
}

func TestRequestUserWithoutGuard(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := auth.RequestUser(rec, httptest.NewRequest(http.MethodGet, "/", nil), discard())
	if ok || rec.Code != http.StatusUnauthorized {
		t.Errorf("got ok=%v status=%d", ok, rec.Code)
	}
}

func TestCookies(t *testing.T) {
	tk := tokens(t, "secret")

	rec := httptest.NewRecorder()
	tk.SetCookie(rec, "abc")
	set := rec.Result().Cookies()
	if len(set) != 1 || set[0].Value != "abc" || !set[0].HttpOnly || set[0].MaxAge != 168*3600 {
		t.Errorf("set cookie: %+v", set)
	}

	rec = httptest.NewRecorder()
	tk.ClearCookie(rec)
	if h := rec.Header().Get("Set-Cookie"); !strings.Contains(h, "Max-Age=0") {
		t.Errorf("clear cookie header: %s", h)
	}
}
