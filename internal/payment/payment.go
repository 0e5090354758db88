// Package payment creates Razorpay orders and verifies checkout signatures.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

var (
	// ErrDisabled indicates no gateway credentials are configured.
	ErrDisabled = errors.New("payment gateway not configured")
	// ErrInvalidAmount indicates a non-positive order amount.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Order is a gateway order. Amount is in the currency's minor unit.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// APIError wraps a failed call to the gateway.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("razorpay %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Gateway creates orders and verifies payment signatures.
type Gateway interface {
	// CreateOrder opens an order for amount in major units.
	CreateOrder(ctx context.Context, amount int, currency, receipt string, notes map[string]string) (*Order, error)

	// FetchOrder reads an order back from the gateway.
	FetchOrder(ctx context.Context, orderID string) (*Order, error)

	// VerifySignature reports whether signature authenticates paymentID for orderID.
	VerifySignature(orderID, paymentID, signature string) bool

	// KeyID is the public key the checkout widget is opened with.
	KeyID() string
}

// Orders is the part of the razorpay-go orders resource the gateway calls.
type Orders interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Fetch(orderID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Receipt returns the receipt identifier for an order created at t.
func Receipt(t time.Time) string {
	return fmt.Sprintf("receipt_%d", t.UnixMilli())
}

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID" under secret.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type gateway struct {
	keyID     string
	keySecret string
	orders    Orders
}

// New creates a Razorpay gateway from a finalized Config.
func New(cfg *Config) (Gateway, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	client.Order.Request.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	client.Order.Request.HTTPClient = &http.Client{Timeout: cfg.TimeoutDuration()}

	return NewWithOrders(cfg.KeyID, cfg.KeySecret, client.Order), nil
}

// NewWithOrders creates a gateway over an existing orders resource.
func NewWithOrders(keyID, keySecret string, orders Orders) Gateway {
	return &gateway{
		keyID:     keyID,
		keySecret: keySecret,
		orders:    orders,
	}
}

func (g *gateway) KeyID() string {
	return g.keyID
}

func (g *gateway) CreateOrder(ctx context.Context, amount int, currency, receipt string, notes map[string]string) (*Order, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	data := map[string]interface{}{
		"amount":   int64(amount) * 100,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}

	return call(ctx, "create order", func() (map[string]interface{}, error) {
		return g.orders.Create(data, nil)
	})
}

func (g *gateway) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, &APIError{Op: "fetch order", Err: errors.New("order id required")}
	}
	return call(ctx, "fetch order", func() (map[string]interface{}, error) {
		return g.orders.Fetch(orderID, nil, nil)
	})
}

func (g *gateway) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	expected := Sign(g.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// call runs a blocking SDK request, returning early if ctx ends first.
// The SDK call itself is bounded by the client timeout.
func call(ctx context.Context, op string, fn func() (map[string]interface{}, error)) (*Order, error) {
	type result struct {
		body map[string]interface{}
		err  error
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan result, 1)
	go func() {
		body, err := fn()
		done <- result{body, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, &APIError{Op: op, Err: res.err}
		}
		order, err := decodeOrder(res.body)
		if err != nil {
			return nil, &APIError{Op: op, Err: err}
		}
		return order, nil
	}
}

func decodeOrder(body map[string]interface{}) (*Order, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	var order Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	if order.ID == "" {
		return nil, errors.New("order response has no id")
	}
	return &order, nil
}
