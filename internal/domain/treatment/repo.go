package treatment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Treatment) error
	GetByName(ctx context.Context, name string) (*Treatment, error)
	List(ctx context.Context, limit, offset int) ([]*Treatment, int, error)
	// ListAll returns the whole catalog ordered by name; the in-memory
	// availability strategy iterates it.
	ListAll(ctx context.Context) ([]*Treatment, error)
	// AvailabilityByDate is the store-side availability strategy: one
	// query that joins bookings to the catalog on name+date and
	// set-subtracts the booked labels from each template.
	AvailabilityByDate(ctx context.Context, date string) ([]*Availability, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingLookup is the slice of the booking store the in-memory strategy
// needs: the slot labels booked per treatment on one date.
type BookingLookup interface {
	SlotsBookedOn(ctx context.Context, date string) (map[string][]string, error)
}
