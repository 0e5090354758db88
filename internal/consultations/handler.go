package consultations

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/moodai/pkg/auth"
	"github.com/JaimeStill/moodai/pkg/handlers"
	"github.com/JaimeStill/moodai/pkg/routes"
)

// Handler provides HTTP endpoints for consultation checkout and bookings.
type Handler struct {
	sys     System
	logger  *slog.Logger
	maxBody int64
}

// NewHandler creates a Handler with the given system, logger, and request body limit.
func NewHandler(sys System, logger *slog.Logger, maxBody int64) *Handler {
	return &Handler{
		sys:     sys,
		logger:  logger.With("handler", "consultations"),
		maxBody: maxBody,
	}
}

// Routes returns the route group definition for payment endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/payment",
		Tags:   []string{"Consultations"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/create-order", Handler: h.CreateOrder, OpenAPI: ops.createOrder},
			{Method: "POST", Pattern: "/verify", Handler: h.Verify, OpenAPI: ops.verify, Auth: true},
			{Method: "GET", Pattern: "/consultations", Handler: h.List, OpenAPI: ops.list, Auth: true},
		},
	}
}

// CreateOrder opens a gateway order for checkout.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if r.ContentLength != 0 {
		var err error
		req, err = handlers.DecodeJSON[CreateOrderRequest](w, r, h.maxBody)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	resp, err := h.sys.CreateOrder(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Verify checks the checkout signature and books the consultation.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	req, err := handlers.DecodeJSON[VerifyRequest](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	c, err := h.sys.Verify(r.Context(), userID, req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, VerifyResponse{
		Success:        true,
		Message:        "payment verified and consultation booked",
		ConsultationID: c.ID,
		BookingDetails: BookingDetails{
			ID:        c.ID,
			PaymentID: c.PaymentID,
			Amount:    c.Amount,
			Status:    c.Status,
		},
	})
}

// List returns the signed-in user's consultations, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.RequestUser(w, r, h.logger)
	if !ok {
		return
	}

	items, err := h.sys.List(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}
