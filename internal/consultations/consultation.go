// Package consultations books paid one-on-one wellness consultations.
package consultations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/notifications"
	"github.com/JaimeStill/moodai/internal/users"
)

// Status is the lifecycle state of a consultation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// OrderDescription is attached to every gateway order as a note.
const OrderDescription = "MoodAI 1-on-1 Wellness Consultation"

// Consultation is a booked session. Amount is in major currency units.
type Consultation struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	OrderID     string     `json:"order_id"`
	PaymentID   string     `json:"payment_id"`
	Amount      int        `json:"amount"`
	Currency    string     `json:"currency"`
	Status      Status     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Notes       string     `json:"notes"`
	BookedAt    time.Time  `json:"booked_at"`
}

// CreateOrderRequest opens a checkout. Amount is in major units; zero uses the
// configured consultation price.
type CreateOrderRequest struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrderResponse carries what the checkout widget needs. Amount is in
// minor units as returned by the gateway.
type CreateOrderResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

// VerifyRequest is the checkout callback payload. Amount is in minor units and,
// when set, must match the amount the gateway holds for the order.
type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	Amount    int64  `json:"amount"`
}

// BookingDetails summarizes a confirmed booking.
type BookingDetails struct {
	ID        uuid.UUID `json:"id"`
	PaymentID string    `json:"payment_id"`
	Amount    int       `json:"amount"`
	Status    Status    `json:"status"`
}

// VerifyResponse is returned after a successful verification.
type VerifyResponse struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message"`
	ConsultationID uuid.UUID      `json:"consultation_id"`
	BookingDetails BookingDetails `json:"booking_details"`
}

// Accounts resolves the booking user for the confirmation email.
type Accounts interface {
	Find(ctx context.Context, id uuid.UUID) (*users.User, error)
}

// ConfirmationNotifier sends the booking confirmation email.
type ConfirmationNotifier interface {
	ConsultationConfirmed(to string, data notifications.ConsultationData)
}
