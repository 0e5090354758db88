package history

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JaimeStill/moodai/pkg/auth"
	"github.com/JaimeStill/moodai/pkg/handlers"
	"github.com/JaimeStill/moodai/pkg/pagination"
	"github.com/JaimeStill/moodai/pkg/routes"
)

var errInvalidDays = errors.New("days must be a positive integer")

// Handler provides HTTP endpoints for the signed-in user's mood history.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "history"),
		pagination: pagination,
		now:        time.Now,
	}
}

// Routes returns the route group definition for history endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/history",
		Tags:   []string{"History"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: ops.list, Auth: true},
			{Method: "GET", Pattern: "/chart", Handler: h.Chart, OpenAPI: ops.chart, Auth: true},
			{Method: "GET", Pattern: "/summary", Handler: h.Summary, OpenAPI: ops.summary, Auth: true},
		},
	}
}

// List returns the user's entries, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), userID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Chart returns the user's chart points for the last ?days (default 30).
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	days, err := daysParam(r, DefaultChartDays)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	points, err := h.sys.Chart(r.Context(), userID, days)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, points)
}

// Summary aggregates the user's entries over the last ?days (default 7).
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	days, err := daysParam(r, DefaultSummaryDays)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	to := h.now()
	from := to.AddDate(0, 0, -days)

	summary, err := h.sys.Summary(r.Context(), userID, from, to)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

func daysParam(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return def, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, errInvalidDays
	}
	return ClampDays(days, def), nil
}
