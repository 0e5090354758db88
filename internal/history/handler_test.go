package history_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/history"
	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/pkg/auth"
	"github.com/JaimeStill/moodai/pkg/pagination"
)

type mockSystem struct {
	appendFn  func(ctx context.Context, userID uuid.UUID, label mood.Label, message string) (*history.Entry, error)
	listFn    func(ctx context.Context, userID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[history.Entry], error)
	chartFn   func(ctx context.Context, userID uuid.UUID, days int) ([]history.ChartPoint, error)
	summaryFn func(ctx context.Context, userID uuid.UUID, from, to time.Time) (*history.Summary, error)
}

func (m *mockSystem) Handler() *history.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) Append(ctx context.Context, userID uuid.UUID, label mood.Label, message string) (*history.Entry, error) {
	return m.appendFn(ctx, userID, label, message)
}

func (m *mockSystem) List(ctx context.Context, userID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[history.Entry], error) {
	return m.listFn(ctx, userID, page)
}

func (m *mockSystem) Chart(ctx context.Context, userID uuid.UUID, days int) ([]history.ChartPoint, error) {
	return m.chartFn(ctx, userID, days)
}

func (m *mockSystem) Summary(ctx context.Context, userID uuid.UUID, from, to time.Time) (*history.Summary, error) {
	return m.summaryFn(ctx, userID, from, to)
}

func newTestHandler(sys history.System) *history.Handler {
	return history.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

// setupMux registers the handler routes, signing every request in as userID
// unless userID is the zero UUID.
func setupMux(h *history.Handler, userID uuid.UUID) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		next := route.Handler
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			if userID != uuid.Nil {
				r = r.WithContext(auth.WithUserID(r.Context(), userID))
			}
			next(w, r)
		})
	}
	return mux
}

func TestRoutesRequireAuth(t *testing.T) {
	h := newTestHandler(&mockSystem{})
	for _, route := range h.Routes().Routes {
		if !route.Auth {
			t.Errorf("%s %s is not marked Auth", route.Method, route.Pattern)
		}
	}
}

func TestHandlerUnauthenticated(t *testing.T) {
	mux := setupMux(newTestHandler(&mockSystem{}), uuid.Nil)

	for _, path := range []string{"/history", "/history/chart", "/history/summary"} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestHandlerList(t *testing.T) {
	userID := uuid.New()
	var gotUser uuid.UUID

	sys := &mockSystem{
		listFn: func(_ context.Context, id uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[history.Entry], error) {
			gotUser = id
			items := []history.Entry{{ID: uuid.New(), UserID: id, Mood: mood.Anxious, Message: "nervous"}}
			result := pagination.NewPageResult(items, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys), userID).ServeHTTP(rec, httptest.NewRequest("GET", "/history", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUser != userID {
		t.Errorf("user = %s, want %s", gotUser, userID)
	}

	var result pagination.PageResult[history.Entry]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].Mood != mood.Anxious {
		t.Errorf("unexpected data: %+v", result.Data)
	}
}

func TestHandlerChartDays(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		days   int
	}{
		{"default", "", http.StatusOK, history.DefaultChartDays},
		{"explicit", "?days=14", http.StatusOK, 14},
		{"clamped", "?days=5000", http.StatusOK, history.MaxDays},
		{"zero", "?days=0", http.StatusBadRequest, 0},
		{"not a number", "?days=week", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDays int
			sys := &mockSystem{
				chartFn: func(_ context.Context, _ uuid.UUID, days int) ([]history.ChartPoint, error) {
					gotDays = days
					return []history.ChartPoint{history.NewChartPoint(time.Now(), mood.Neutral)}, nil
				},
			}

			rec := httptest.NewRecorder()
			setupMux(newTestHandler(sys), uuid.New()).
				ServeHTTP(rec, httptest.NewRequest("GET", "/history/chart"+tt.query, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if gotDays != tt.days {
				t.Errorf("days = %d, want %d", gotDays, tt.days)
			}
		})
	}
}

func TestHandlerSummaryWindow(t *testing.T) {
	var from, to time.Time
	sys := &mockSystem{
		summaryFn: func(_ context.Context, _ uuid.UUID, f, tt time.Time) (*history.Summary, error) {
			from, to = f, tt
			s := history.Summarize(f, tt, map[mood.Label]int{mood.Motivated: 2})
			return &s, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys), uuid.New()).
		ServeHTTP(rec, httptest.NewRequest("GET", "/history/summary", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !from.AddDate(0, 0, history.DefaultSummaryDays).Equal(to) {
		t.Errorf("window = [%v, %v), want %d days", from, to, history.DefaultSummaryDays)
	}

	var s history.Summary
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Dominant == nil || *s.Dominant != mood.Motivated {
		t.Errorf("Dominant = %v, want %s", s.Dominant, mood.Motivated)
	}
}

func TestHandlerSystemError(t *testing.T) {
	sys := &mockSystem{
		chartFn: func(context.Context, uuid.UUID, int) ([]history.ChartPoint, error) {
			return nil, errors.New("connection reset")
		},
	}

	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys), uuid.New()).
		ServeHTTP(rec, httptest.NewRequest("GET", "/history/chart", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{history.ErrUserNotFound, http.StatusNotFound},
		{history.ErrInvalidMood, http.StatusBadRequest},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := history.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
