package recommendations

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/pkg/handlers"
	"github.com/JaimeStill/moodai/pkg/pagination"
	"github.com/JaimeStill/moodai/pkg/routes"
)

// Handler provides HTTP endpoints for recommendation operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	maxBody    int64
}

// NewHandler creates a Handler with the given system, logger, pagination config,
// and request body limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxBody int64,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "recommendations"),
		pagination: pagination,
		maxBody:    maxBody,
	}
}

// Routes returns the route group definition for recommendation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/recommendations",
		Tags:   []string{"Recommendations"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: ops.list},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: ops.find},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: ops.create, Auth: true},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: ops.delete, Auth: true},
		},
	}
}

// List returns a paginated list of recommendations filtered by mood and type.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single recommendation by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	rec, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

// Create adds a recommendation. Returns 201 with the stored record.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[CreateCommand](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rec, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, rec)
}

// Delete removes a recommendation by its UUID path parameter. Returns 204 on success.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
