package treatment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Strategy selects how availability is computed. Both strategies produce
// identical output for the same catalog and bookings.
type Strategy string

const (
	// StrategyMemory loads the catalog and the date's bookings and
	// filters in process.
	StrategyMemory Strategy = "memory"
	// StrategyQuery pushes the join and set-subtraction into the store.
	StrategyQuery Strategy = "query"
)

type Service struct {
	repo     Repository
	bookings BookingLookup
}

func NewService(repo Repository, bookings BookingLookup) *Service {
	return &Service{repo: repo, bookings: bookings}
}

func (s *Service) Create(ctx context.Context, t *Treatment) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(t.Slots) == 0 {
		return fmt.Errorf("slots are required")
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) GetByName(ctx context.Context, name string) (*Treatment, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Treatment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Availability computes per-treatment remaining slots for the date. A date
// with no bookings (including a blank date, which matches no bookings)
// returns every template unchanged.
func (s *Service) Availability(ctx context.Context, date string, strategy Strategy) ([]*Availability, error) {
	switch strategy {
	case StrategyQuery, "":
		return s.repo.AvailabilityByDate(ctx, date)
	case StrategyMemory:
		return s.availabilityInMemory(ctx, date)
	default:
		return nil, fmt.Errorf("unknown availability strategy: %s", strategy)
	}
}

func (s *Service) availabilityInMemory(ctx context.Context, date string) ([]*Availability, error) {
	catalog, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	bookedByTreatment, err := s.bookings.SlotsBookedOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings for %q: %w", date, err)
	}

	items := make([]*Availability, 0, len(catalog))
	for _, t := range catalog {
		booked := make(map[string]struct{}, len(bookedByTreatment[t.Name]))
		for _, slot := range bookedByTreatment[t.Name] {
			booked[slot] = struct{}{}
		}
		items = append(items, &Availability{
			TreatmentName:  t.Name,
			Price:          t.Price,
			RemainingSlots: RemainingSlots(t.Slots, booked),
		})
	}
	return items, nil
}
