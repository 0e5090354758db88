package mood_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/internal/sentiment"
)

func newTestHandler(scorer sentiment.Scorer) *mood.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return mood.NewHandler(mood.NewClassifier(scorer, logger), logger, 1024)
}

func setupMux(h *mood.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestHandlerLabels(t *testing.T) {
	mux := setupMux(newTestHandler(sentiment.NewLexicon()))

	req := httptest.NewRequest(http.MethodGet, "/mood/labels", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got []mood.Info
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[3].Label != mood.BurntOut || got[3].Color != "#ef4444" {
		t.Errorf("got[3] = %+v, want Burnt Out #ef4444", got[3])
	}
}

func TestHandlerClassify(t *testing.T) {
	mux := setupMux(newTestHandler(sentiment.NewLexicon()))

	body, _ := json.Marshal(mood.ClassifyRequest{Text: "I'm completely burnt out"})
	req := httptest.NewRequest(http.MethodPost, "/mood/classify", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got mood.ClassifyResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mood != mood.BurntOut {
		t.Errorf("mood = %q, want %q", got.Mood, mood.BurntOut)
	}
	if got.Color != "#ef4444" || got.Score != 10 {
		t.Errorf("lookups = %s/%d, want #ef4444/10", got.Color, got.Score)
	}
}

func TestHandlerClassifyErrors(t *testing.T) {
	tests := []struct {
		name   string
		scorer sentiment.Scorer
		body   string
		want   int
	}{
		{"empty text", sentiment.NewLexicon(), `{"text":"  "}`, http.StatusBadRequest},
		{"malformed json", sentiment.NewLexicon(), `{"text":`, http.StatusBadRequest},
		{"body too large", sentiment.NewLexicon(), `{"text":"` + strings.Repeat("a", 2048) + `"}`, http.StatusBadRequest},
		{"scorer down", fixedScorer{err: errors.New("boom")}, `{"text":"hello"}`, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := setupMux(newTestHandler(tt.scorer))

			req := httptest.NewRequest(http.MethodPost, "/mood/classify", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}
