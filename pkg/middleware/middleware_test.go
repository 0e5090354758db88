package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/moodai/pkg/middleware"
)

func TestApplyOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mw := middleware.New()
	mw.Use(tag("cors"))
	mw.Use(tag("logger"))

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := []string{"cors", "logger", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order: got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order: got %v, want %v", order, want)
			break
		}
	}
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://localhost:3000"},
		AllowCredentials: true,
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	tests := []struct {
		name        string
		cfg         *middleware.CORSConfig
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantCreds   string
		wantReached bool
	}{
		{"disabled", &middleware.CORSConfig{}, "GET", "http://localhost:3000", http.StatusOK, "", "", true},
		{"allowed origin", cfg, "POST", "http://localhost:3000", http.StatusOK, "http://localhost:3000", "true", true},
		{"other origin", cfg, "GET", "http://evil.example", http.StatusOK, "", "", true},
		{"preflight allowed", cfg, "OPTIONS", "http://localhost:3000", http.StatusNoContent, "http://localhost:3000", "true", false},
		{"preflight rejected", cfg, "OPTIONS", "http://evil.example", http.StatusForbidden, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			handler := middleware.CORS(tt.cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/api/chat", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow-origin: got %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("allow-credentials: got %q, want %q", got, tt.wantCreds)
			}
			if reached != tt.wantReached {
				t.Errorf("handler reached: got %v, want %v", reached, tt.wantReached)
			}
		})
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/history?days=7", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log: %v", err)
	}
	if entry["status"] != float64(http.StatusUnauthorized) {
		t.Errorf("status: got %v, want 401", entry["status"])
	}
	if entry["uri"] != "/history?days=7" {
		t.Errorf("uri: got %v", entry["uri"])
	}
}

func TestCORSConfigFinalize(t *testing.T) {
	t.Setenv("MOODAI_CORS_ENABLED", "true")
	t.Setenv("MOODAI_CORS_ORIGINS", "http://localhost:3000, https://moodai.app")

	cfg := middleware.CORSConfig{}
	err := cfg.Finalize(&middleware.CORSEnv{
		Enabled: "MOODAI_CORS_ENABLED",
		Origins: "MOODAI_CORS_ORIGINS",
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled should be true")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "https://moodai.app" {
		t.Errorf("origins: got %v", cfg.Origins)
	}
	if len(cfg.AllowedHeaders) != 2 || cfg.AllowedHeaders[1] != "Authorization" {
		t.Errorf("allowed headers: got %v", cfg.AllowedHeaders)
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("max_age: got %d, want 3600", cfg.MaxAge)
	}
}

func TestCORSConfigMerge(t *testing.T) {
	base := middleware.CORSConfig{Origins: []string{"http://localhost:3000"}, MaxAge: 3600}
	base.Merge(&middleware.CORSConfig{Enabled: true, Origins: []string{"https://moodai.app"}})

	if !base.Enabled {
		t.Error("enabled should be true after merge")
	}
	if len(base.Origins) != 1 || base.Origins[0] != "https://moodai.app" {
		t.Errorf("origins: got %v", base.Origins)
	}
	if base.MaxAge != 3600 {
		t.Errorf("max_age: got %d, want 3600 kept", base.MaxAge)
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusBadGateway, "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte("body"))
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/chat", nil))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("unmarshal log: %v", err)
		}
		if entry["level"] != tt.level || entry["bytes"] != float64(4) {
			t.Errorf("status %d: got level %v bytes %v", tt.status, entry["level"], entry["bytes"])
		}
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil composer")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/chat", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"error":"internal server error"`)) {
		t.Errorf("body: %s", rec.Body)
	}
	if !bytes.Contains(buf.Bytes(), []byte("nil composer")) {
		t.Errorf("panic not logged: %s", buf.String())
	}
}

func TestRecoverReraisesAbort(t *testing.T) {
	handler := middleware.Recover(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Error("expected ErrAbortHandler to propagate")
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}
