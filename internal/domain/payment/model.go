package payment

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one completed charge, written once and never updated.
type Payment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BookingID     uuid.UUID `db:"booking_id" json:"bookingId"`
	TransactionID string    `db:"transaction_id" json:"transactionId"`
	Amount        float64   `db:"amount" json:"amount"`
	Email         string    `db:"email" json:"email"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
