package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrDuplicate signals that a booking with the same (email, treatment,
// appointment date) triple already exists, whether caught by the pre-check
// or by the unique index on insert.
var ErrDuplicate = errors.New("duplicate booking")

// ErrNotFound signals that no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

type Repository interface {
	// Create inserts the booking; returns ErrDuplicate when the unique
	// index on (email, treatment, appointment_date) rejects it.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByEmail(ctx context.Context, email string) ([]*Booking, error)
	// ExistsTriple reports whether any booking has the same email,
	// treatment and appointment date. Slot identity is deliberately
	// ignored.
	ExistsTriple(ctx context.Context, email, treatment, appointmentDate string) (bool, error)
	// MarkPaid sets paid=true and the transaction id on the booking with
	// this id. Returns the number of rows updated; zero means the
	// referenced booking does not exist.
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (int64, error)
	// SlotsBookedOn returns the booked slot labels per treatment name for
	// one appointment date. Feeds the in-memory availability strategy.
	SlotsBookedOn(ctx context.Context, date string) (map[string][]string, error)
}
