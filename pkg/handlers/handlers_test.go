package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/moodai/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, map[string]string{"mood": "Neutral"})

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		t.Errorf("status: got %d, want 201", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %s", ct)
	}

	var parsed map[string]string
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if parsed["mood"] != "Neutral" {
		t.Errorf("mood: got %s, want Neutral", parsed["mood"])
	}
}

func TestRespondError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		rec := httptest.NewRecorder()
		handlers.RespondError(rec, logger, status, errors.New("message cannot be empty"))

		if rec.Code != status {
			t.Errorf("status: got %d, want %d", rec.Code, status)
		}

		var parsed map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if parsed["error"] != "message cannot be empty" {
			t.Errorf("error: got %q", parsed["error"])
		}
	}
}

type payload struct {
	Message string `json:"message"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    io.Reader
		limit   int64
		want    string
		wantErr string
	}{
		{"valid", strings.NewReader(`{"message":"hello"}`), 1024, "hello", ""},
		{"no limit", strings.NewReader(`{"message":"` + strings.Repeat("a", 4096) + `"}`), 0, strings.Repeat("a", 4096), ""},
		{"empty", http.NoBody, 1024, "", handlers.ErrEmptyBody.Error()},
		{"malformed", strings.NewReader(`{"message":`), 1024, "", "invalid request body"},
		{"too large", strings.NewReader(`{"message":"` + strings.Repeat("a", 2048) + `"}`), 1024, "", "request body exceeds 1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", tt.body)
			rec := httptest.NewRecorder()

			got, err := handlers.DecodeJSON[payload](rec, req, tt.limit)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Message != tt.want {
				t.Errorf("message: got %d chars, want %d", len(got.Message), len(tt.want))
			}
		})
	}
}
