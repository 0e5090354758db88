package chat

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/moodai/pkg/auth"
	"github.com/JaimeStill/moodai/pkg/handlers"
	"github.com/JaimeStill/moodai/pkg/openapi"
	"github.com/JaimeStill/moodai/pkg/routes"
)

// Handler provides the chat endpoint.
type Handler struct {
	sys     System
	logger  *slog.Logger
	maxBody int64
}

// NewHandler creates a Handler with the given system, logger, and request body limit.
func NewHandler(sys System, logger *slog.Logger, maxBody int64) *Handler {
	return &Handler{
		sys:     sys,
		logger:  logger.With("handler", "chat"),
		maxBody: maxBody,
	}
}

// Routes returns the route group definition for the chat endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/chat",
		Tags:   []string{"Chat"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Chat, OpenAPI: chatOp, Auth: true},
		},
	}
}

// Chat classifies the message and returns the composed reply.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	req, err := handlers.DecodeJSON[Request](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	resp, err := h.sys.Respond(r.Context(), userID, req.Message)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

var chatOp = &openapi.Operation{
	Summary:     "Send a chat message",
	Description: "Detects the mood of the message and replies with support and suggested activities.",
	RequestBody: openapi.RequestBodyJSON("ChatRequest", true),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Chat reply", "ChatResponse"),
		400: openapi.ResponseRef("BadRequest"),
		401: openapi.ResponseRef("Unauthorized"),
	},
}

// Schemas returns the component schemas referenced by the chat operation.
func Schemas() (map[string]*openapi.Schema, error) {
	req, err := openapi.SchemaOf[Request]()
	if err != nil {
		return nil, err
	}
	resp, err := openapi.SchemaOf[Response]()
	if err != nil {
		return nil, err
	}
	return map[string]*openapi.Schema{
		"ChatRequest":  req,
		"ChatResponse": resp,
	}, nil
}
