package consultations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/notifications"
	"github.com/JaimeStill/moodai/internal/payment"
	"github.com/JaimeStill/moodai/pkg/query"
	"github.com/JaimeStill/moodai/pkg/repository"
)

type repo struct {
	db       *sql.DB
	gateway  payment.Gateway
	accounts Accounts
	notifier ConfirmationNotifier
	pricing  payment.Config
	logger   *slog.Logger
	maxBody  int64
	now      func() time.Time
}

// New creates a consultation repository implementing the System interface.
// A nil gateway disables order creation and verification.
func New(
	db *sql.DB,
	gateway payment.Gateway,
	accounts Accounts,
	notifier ConfirmationNotifier,
	pricing payment.Config,
	logger *slog.Logger,
	maxBody int64,
) System {
	return &repo{
		db:       db,
		gateway:  gateway,
		accounts: accounts,
		notifier: notifier,
		pricing:  pricing,
		logger:   logger.With("system", "consultations"),
		maxBody:  maxBody,
		now:      time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.maxBody)
}

func (r *repo) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if r.gateway == nil {
		return nil, ErrUnavailable
	}

	amount := req.Amount
	if amount == 0 {
		amount = r.pricing.ConsultationAmount
	}
	currency := req.Currency
	if currency == "" {
		currency = r.pricing.Currency
	}

	order, err := r.gateway.CreateOrder(ctx, amount, currency, payment.Receipt(r.now()), map[string]string{
		"description": OrderDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	r.logger.Info("order created", "order_id", order.ID, "amount", order.Amount, "currency", order.Currency)

	return &CreateOrderResponse{
		Success:  true,
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Key:      r.gateway.KeyID(),
	}, nil
}

func (r *repo) Verify(ctx context.Context, userID uuid.UUID, req VerifyRequest) (*Consultation, error) {
	if r.gateway == nil {
		return nil, ErrUnavailable
	}

	if !r.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		r.logger.Warn("signature mismatch", "order_id", req.OrderID, "payment_id", req.PaymentID)
		return nil, ErrVerificationFailed
	}

	order, err := r.gateway.FetchOrder(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	if req.Amount != 0 && req.Amount != order.Amount {
		r.logger.Warn("amount mismatch", "order_id", order.ID, "claimed", req.Amount, "charged", order.Amount)
		return nil, ErrVerificationFailed
	}
	amount := int(order.Amount / 100)

	q := `
		INSERT INTO consultations(user_id, order_id, payment_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, order_id, payment_id, amount, currency, status, scheduled_at, notes, booked_at`

	args := []any{userID, order.ID, req.PaymentID, amount, order.Currency, string(StatusConfirmed)}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Consultation, error) {
		return repository.QueryOne(ctx, tx, q, args, scanConsultation)
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, repository.MapError(err, ErrUserNotFound, ErrDuplicate)
	}

	r.logger.Info("consultation booked", "id", c.ID, "user_id", userID, "payment_id", c.PaymentID)
	r.confirm(ctx, c)

	return &c, nil
}

func (r *repo) List(ctx context.Context, userID uuid.UUID) ([]Consultation, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", userID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanConsultation)
	if err != nil {
		return nil, fmt.Errorf("query consultations: %w", err)
	}
	return items, nil
}

func (r *repo) confirm(ctx context.Context, c Consultation) {
	if r.accounts == nil || r.notifier == nil {
		return
	}

	u, err := r.accounts.Find(ctx, c.UserID)
	if err != nil {
		r.logger.Warn("confirmation email skipped", "id", c.ID, "error", err)
		return
	}

	r.notifier.ConsultationConfirmed(u.Email, notifications.ConsultationData{
		Username:  u.Username,
		BookingID: c.ID.String(),
		PaymentID: c.PaymentID,
		Amount:    c.Amount,
		Currency:  c.Currency,
	})
}
