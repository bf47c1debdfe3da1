package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dentalcare/dentalcare/internal/platform/payments"
)

type Service struct {
	repo      Repository
	bookings  BookingMarker
	processor payments.Processor
	log       zerolog.Logger
}

func NewService(repo Repository, bookings BookingMarker, processor payments.Processor, log zerolog.Logger) *Service {
	return &Service{repo: repo, bookings: bookings, processor: processor, log: log}
}

// Record persists the payment and then marks the referenced booking paid.
// The two steps are independent best-effort writes: a payment whose booking
// id matches nothing is still kept (logged for manual reconciliation), and
// nothing is rolled back.
func (s *Service) Record(ctx context.Context, p *Payment) error {
	if p.TransactionID == "" {
		return fmt.Errorf("transaction id is required")
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("record payment: %w", err)
	}

	updated, err := s.bookings.MarkPaid(ctx, p.BookingID, p.TransactionID)
	if err != nil {
		s.log.Error().Err(err).
			Str("payment_id", p.ID.String()).
			Str("booking_id", p.BookingID.String()).
			Msg("payment recorded but booking update failed")
		return nil
	}
	if updated == 0 {
		s.log.Warn().
			Str("payment_id", p.ID.String()).
			Str("booking_id", p.BookingID.String()).
			Msg("orphaned payment: no booking matches, needs manual reconciliation")
	}
	return nil
}

// CreateIntent asks the processor for a client secret over the given amount
// in minor units. The amount comes from the caller and is not re-checked
// against the treatment catalog.
func (s *Service) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	if currency == "" {
		currency = "usd"
	}
	return s.processor.CreateIntent(ctx, amount, currency)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]*Payment, error) {
	return s.repo.ListByEmail(ctx, email)
}
