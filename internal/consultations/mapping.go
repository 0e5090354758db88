package consultations

import (
	"github.com/JaimeStill/moodai/pkg/query"
	"github.com/JaimeStill/moodai/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "consultations", "c").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("order_id", "OrderID").
	Project("payment_id", "PaymentID").
	Project("amount", "Amount").
	Project("currency", "Currency").
	Project("status", "Status").
	Project("scheduled_at", "ScheduledAt").
	Project("notes", "Notes").
	Project("booked_at", "BookedAt")

var defaultSort = query.SortField{
	Field:      "BookedAt",
	Descending: true,
}

func scanConsultation(s repository.Scanner) (Consultation, error) {
	var c Consultation
	err := s.Scan(
		&c.ID,
		&c.UserID,
		&c.OrderID,
		&c.PaymentID,
		&c.Amount,
		&c.Currency,
		&c.Status,
		&c.ScheduledAt,
		&c.Notes,
		&c.BookedAt,
	)
	return c, err
}
