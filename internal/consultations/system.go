package consultations

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for consultation booking.
type System interface {
	Handler() *Handler

	// CreateOrder opens a gateway order for a consultation.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)

	// Verify checks the checkout signature and books a confirmed consultation
	// for userID.
	Verify(ctx context.Context, userID uuid.UUID, req VerifyRequest) (*Consultation, error)

	// List returns userID's consultations, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]Consultation, error)
}
