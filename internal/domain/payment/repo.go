package payment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create appends the payment record. There is no update path.
	Create(ctx context.Context, p *Payment) error
	ListByEmail(ctx context.Context, email string) ([]*Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
}

// BookingMarker is the slice of the booking store settlement needs: flip the
// referenced booking to paid and stamp the transaction id. Returns the
// number of bookings updated.
type BookingMarker interface {
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (int64, error)
}
