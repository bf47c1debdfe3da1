package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one patient appointment. Created unpaid; Payment Settlement is
// the only writer of Paid and TransactionID.
type Booking struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Treatment       string    `db:"treatment" json:"treatment"`
	AppointmentDate string    `db:"appointment_date" json:"appointmentDate"`
	Slot            string    `db:"slot" json:"slot"`
	Email           string    `db:"email" json:"email"`
	PatientName     string    `db:"patient_name" json:"patientName"`
	Price           float64   `db:"price" json:"price"`
	Paid            bool      `db:"paid" json:"paid"`
	TransactionID   *string   `db:"transaction_id" json:"transactionId,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}
