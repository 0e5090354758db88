package consultations

import "github.com/JaimeStill/moodai/pkg/openapi"

var ops = struct {
	createOrder, verify, list *openapi.Operation
}{
	createOrder: &openapi.Operation{
		Summary:     "Create a checkout order for a consultation",
		RequestBody: openapi.RequestBodyJSON("CreateOrder", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Order", "CreateOrderResult"),
			400: openapi.ResponseRef("BadRequest"),
			502: {Description: "Payment gateway rejected the order"},
			503: {Description: "Payments are not configured"},
		},
	},
	verify: &openapi.Operation{
		Summary:     "Verify a checkout payment and book the consultation",
		RequestBody: openapi.RequestBodyJSON("VerifyPayment", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Booking", "VerifyPaymentResult"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	list: &openapi.Operation{
		Summary: "List booked consultations",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Consultations", "Consultations"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

// Schemas returns the component schemas referenced by consultation operations.
func Schemas() (map[string]*openapi.Schema, error) {
	schemas := make(map[string]*openapi.Schema, 5)
	for name, fn := range map[string]func() (*openapi.Schema, error){
		"CreateOrder":         openapi.SchemaOf[CreateOrderRequest],
		"CreateOrderResult":   openapi.SchemaOf[CreateOrderResponse],
		"VerifyPayment":       openapi.SchemaOf[VerifyRequest],
		"VerifyPaymentResult": openapi.SchemaOf[VerifyResponse],
		"Consultations":       openapi.SchemaOf[[]Consultation],
	} {
		s, err := fn()
		if err != nil {
			return nil, err
		}
		schemas[name] = s
	}
	return schemas, nil
}
