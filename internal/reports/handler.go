package reports

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/moodai/pkg/auth"
	"github.com/JaimeStill/moodai/pkg/handlers"
	"github.com/JaimeStill/moodai/pkg/openapi"
	"github.com/JaimeStill/moodai/pkg/routes"
)

// Handler provides HTTP endpoints for the signed-in user's weekly reports.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reports"),
	}
}

// Routes returns the route group definition for report endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reports",
		Tags:   []string{"Reports"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/weekly", Handler: h.Weekly, OpenAPI: ops.weekly, Auth: true},
			{Method: "POST", Pattern: "/weekly/send", Handler: h.SendWeekly, OpenAPI: ops.send, Auth: true},
			{Method: "GET", Pattern: "/archive/{date}", Handler: h.Archive, OpenAPI: ops.archive, Auth: true},
		},
	}
}

// Weekly returns the current weekly report without sending it.
func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	report, err := h.sys.Generate(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// SendWeekly emails the current weekly report and archives it.
func (h *Handler) SendWeekly(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	report, err := h.sys.Send(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, report)
}

// Archive returns the report archived on the {date} path parameter.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	report, err := h.sys.Archived(r.Context(), userID, r.PathValue("date"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

var ops = struct {
	weekly, send, archive *openapi.Operation
}{
	weekly: &openapi.Operation{
		Summary: "Current weekly mood report",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Report", "WeeklyReport"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	send: &openapi.Operation{
		Summary: "Email the current weekly report",
		Responses: map[int]*openapi.Response{
			202: openapi.ResponseJSON("Report queued for delivery", "WeeklyReport"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	archive: &openapi.Operation{
		Summary:    "Archived weekly report",
		Parameters: []*openapi.Parameter{openapi.PathParam("date", "Report date (YYYY-MM-DD)")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Report", "WeeklyReport"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
			503: {Description: "Report archive is disabled"},
		},
	},
}

// Schemas returns the component schemas referenced by report operations.
func Schemas() (map[string]*openapi.Schema, error) {
	report, err := openapi.SchemaOf[Report]()
	if err != nil {
		return nil, err
	}
	return map[string]*openapi.Schema{"WeeklyReport": report}, nil
}
