package consultations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/consultations"
	"github.com/JaimeStill/moodai/internal/payment"
	"github.com/JaimeStill/moodai/pkg/auth"
)

type mockSystem struct {
	createOrderFn func(ctx context.Context, req consultations.CreateOrderRequest) (*consultations.CreateOrderResponse, error)
	verifyFn      func(ctx context.Context, userID uuid.UUID, req consultations.VerifyRequest) (*consultations.Consultation, error)
	listFn        func(ctx context.Context, userID uuid.UUID) ([]consultations.Consultation, error)
}

func (m *mockSystem) Handler() *consultations.Handler {
	return consultations.NewHandler(m, discard(), 1<<20)
}

func (m *mockSystem) CreateOrder(ctx context.Context, req consultations.CreateOrderRequest) (*consultations.CreateOrderResponse, error) {
	return m.createOrderFn(ctx, req)
}

func (m *mockSystem) Verify(ctx context.Context, userID uuid.UUID, req consultations.VerifyRequest) (*consultations.Consultation, error) {
	return m.verifyFn(ctx, userID, req)
}

func (m *mockSystem) List(ctx context.Context, userID uuid.UUID) ([]consultations.Consultation, error) {
	return m.listFn(ctx, userID)
}

type stubGateway struct {
	order      *payment.Order
	err        error
	valid      bool
	fetched    *payment.Order
	fetchErr   error
	gotAmount  int
	gotReceipt string
}

func (g *stubGateway) CreateOrder(_ context.Context, amount int, currency, receipt string, _ map[string]string) (*payment.Order, error) {
	g.gotAmount = amount
	g.gotReceipt = receipt
	if g.err != nil {
		return nil, g.err
	}
	o := *g.order
	o.Amount = int64(amount) * 100
	o.Currency = currency
	return &o, nil
}

func (g *stubGateway) FetchOrder(context.Context, string) (*payment.Order, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.fetched, nil
}

func (g *stubGateway) VerifySignature(string, string, string) bool { return g.valid }

func (g *stubGateway) KeyID() string { return "rzp_test_key" }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pricing() payment.Config {
	return payment.Config{Currency: "INR", ConsultationAmount: 999}
}

func setupMux(h *consultations.Handler, userID uuid.UUID) *http.ServeMux {
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

func TestCreateOrderDefaults(t *testing.T) {
	gw := &stubGateway{order: &payment.Order{ID: "order_1"}}
	sys := consultations.New(nil, gw, nil, nil, pricing(), discard(), 0)

	resp, err := sys.CreateOrder(context.Background(), consultations.CreateOrderRequest{})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if gw.gotAmount != 999 {
		t.Errorf("gateway amount = %d, want 999", gw.gotAmount)
	}
	if len(gw.gotReceipt) <= len("receipt_") || gw.gotReceipt[:8] != "receipt_" {
		t.Errorf("receipt = %q, want receipt_<unixms>", gw.gotReceipt)
	}

	want := consultations.CreateOrderResponse{
		Success:  true,
		OrderID:  "order_1",
		Amount:   99900,
		Currency: "INR",
		Key:      "rzp_test_key",
	}
	if *resp != want {
		t.Errorf("resp = %+v, want %+v", *resp, want)
	}
}

func TestCreateOrderExplicitAmount(t *testing.T) {
	gw := &stubGateway{order: &payment.Order{ID: "order_2"}}
	sys := consultations.New(nil, gw, nil, nil, pricing(), discard(), 0)

	resp, err := sys.CreateOrder(context.Background(), consultations.CreateOrderRequest{Amount: 1499, Currency: "USD"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if resp.Amount != 149900 || resp.Currency != "USD" {
		t.Errorf("resp = %+v, want amount 149900 USD", resp)
	}
}

func TestGatewayDisabled(t *testing.T) {
	sys := consultations.New(nil, nil, nil, nil, pricing(), discard(), 0)

	if _, err := sys.CreateOrder(context.Background(), consultations.CreateOrderRequest{}); !errors.Is(err, consultations.ErrUnavailable) {
		t.Errorf("CreateOrder err = %v, want ErrUnavailable", err)
	}
	if _, err := sys.Verify(context.Background(), uuid.New(), consultations.VerifyRequest{}); !errors.Is(err, consultations.ErrUnavailable) {
		t.Errorf("Verify err = %v, want ErrUnavailable", err)
	}
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	sys := consultations.New(nil, &stubGateway{valid: false}, nil, nil, pricing(), discard(), 0)

	_, err := sys.Verify(context.Background(), uuid.New(), consultations.VerifyRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "forged",
		Amount:    99900,
	})
	if !errors.Is(err, consultations.ErrVerificationFailed) {
		t.Errorf("err = %v, want ErrVerificationFailed", err)
	}
}

func TestVerifyRejectsAmountMismatch(t *testing.T) {
	gw := &stubGateway{
		valid:   true,
		fetched: &payment.Order{ID: "order_1", Amount: 99900, Currency: "INR"},
	}
	sys := consultations.New(nil, gw, nil, nil, pricing(), discard(), 0)

	_, err := sys.Verify(context.Background(), uuid.New(), consultations.VerifyRequest{
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "sig",
		Amount:    100,
	})
	if !errors.Is(err, consultations.ErrVerificationFailed) {
		t.Errorf("err = %v, want ErrVerificationFailed", err)
	}
}

func TestVerifyOrderLookupFails(t *testing.T) {
	gw := &stubGateway{
		valid:    true,
		fetchErr: &payment.APIError{Op: "fetch order", Err: errors.New("The id provided does not exist")},
	}
	sys := consultations.New(nil, gw, nil, nil, pricing(), discard(), 0)

	_, err := sys.Verify(context.Background(), uuid.New(), consultations.VerifyRequest{
		OrderID:   "order_missing",
		PaymentID: "pay_1",
		Signature: "sig",
	})
	if got := consultations.MapHTTPStatus(err); got != http.StatusBadGateway {
		t.Errorf("status = %d, want %d (err = %v)", got, http.StatusBadGateway, err)
	}
}

func TestHandlerCreateOrderGatewayError(t *testing.T) {
	gw := &stubGateway{err: &payment.APIError{Op: "create order", Err: errors.New("Authentication failed")}}
	sys := consultations.New(nil, gw, nil, nil, pricing(), discard(), 0)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/payment/create-order", bytes.NewBufferString(`{"amount":999}`))
	setupMux(sys.Handler(), uuid.Nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestHandlerCreateOrderEmptyBody(t *testing.T) {
	var got consultations.CreateOrderRequest
	sys := &mockSystem{
		createOrderFn: func(_ context.Context, req consultations.CreateOrderRequest) (*consultations.CreateOrderResponse, error) {
			got = req
			return &consultations.CreateOrderResponse{Success: true, OrderID: "order_1"}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys.Handler(), uuid.Nil).ServeHTTP(rec, httptest.NewRequest("POST", "/payment/create-order", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got != (consultations.CreateOrderRequest{}) {
		t.Errorf("request = %+v, want zero value", got)
	}
}

func TestHandlerVerify(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.New()

	sys := &mockSystem{
		verifyFn: func(_ context.Context, id uuid.UUID, req consultations.VerifyRequest) (*consultations.Consultation, error) {
			if id != userID {
				t.Errorf("user = %s, want %s", id, userID)
			}
			return &consultations.Consultation{
				ID:        bookingID,
				UserID:    id,
				OrderID:   req.OrderID,
				PaymentID: req.PaymentID,
				Amount:    int(req.Amount / 100),
				Currency:  "INR",
				Status:    consultations.StatusConfirmed,
			}, nil
		},
	}

	body := `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"sig","amount":99900}`
	rec := httptest.NewRecorder()
	setupMux(sys.Handler(), userID).ServeHTTP(rec, httptest.NewRequest("POST", "/payment/verify", bytes.NewBufferString(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp consultations.VerifyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := consultations.VerifyResponse{
		Success:        true,
		Message:        "payment verified and consultation booked",
		ConsultationID: bookingID,
		BookingDetails: consultations.BookingDetails{
			ID:        bookingID,
			PaymentID: "pay_1",
			Amount:    999,
			Status:    consultations.StatusConfirmed,
		},
	}
	if resp != want {
		t.Errorf("resp = %+v, want %+v", resp, want)
	}
}

func TestHandlerVerifyErrors(t *testing.T) {
	tests := []struct {
		name   string
		userID uuid.UUID
		err    error
		status int
	}{
		{"unauthenticated", uuid.Nil, nil, http.StatusUnauthorized},
		{"bad signature", uuid.New(), consultations.ErrVerificationFailed, http.StatusBadRequest},
		{"duplicate", uuid.New(), consultations.ErrDuplicate, http.StatusConflict},
		{"disabled", uuid.New(), consultations.ErrUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				verifyFn: func(context.Context, uuid.UUID, consultations.VerifyRequest) (*consultations.Consultation, error) {
					return nil, tt.err
				},
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/payment/verify", bytes.NewBufferString(`{"razorpay_order_id":"o"}`))
			setupMux(sys.Handler(), tt.userID).ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestHandlerList(t *testing.T) {
	userID := uuid.New()
	sys := &mockSystem{
		listFn: func(_ context.Context, id uuid.UUID) ([]consultations.Consultation, error) {
			return []consultations.Consultation{
				{ID: uuid.New(), UserID: id, Status: consultations.StatusConfirmed},
				{ID: uuid.New(), UserID: id, Status: consultations.StatusCompleted},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys.Handler(), userID).ServeHTTP(rec, httptest.NewRequest("GET", "/payment/consultations", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var items []consultations.Consultation
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
}
