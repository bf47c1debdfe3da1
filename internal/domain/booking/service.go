package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentalcare/dentalcare/internal/platform/notify"
)

const notifyTimeout = 15 * time.Second

type Service struct {
	repo     Repository
	notifier notify.Notifier
	lock     *TripleLock // nil when no Redis is configured
	log      zerolog.Logger
}

func NewService(repo Repository, notifier notify.Notifier, lock *TripleLock, log zerolog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, lock: lock, log: log}
}

// Submit accepts a new booking unless the patient already holds one for the
// same treatment on the same date. Slot identity and slot capacity are not
// checked here; availability is the client's concern via the slot listing.
// The confirmation mail is fired after the insert is durable and never
// affects the outcome.
func (s *Service) Submit(ctx context.Context, b *Booking) error {
	if s.lock != nil {
		release, err := s.lock.Acquire(ctx, b.Email, b.Treatment, b.AppointmentDate)
		if err != nil {
			return s.conflictOrErr(err, b.AppointmentDate)
		}
		defer release()
	}

	exists, err := s.repo.ExistsTriple(ctx, b.Email, b.Treatment, b.AppointmentDate)
	if err != nil {
		return fmt.Errorf("check existing bookings: %w", err)
	}
	if exists {
		return duplicateErr(b.AppointmentDate)
	}

	b.Paid = false
	b.TransactionID = nil
	if err := s.repo.Create(ctx, b); err != nil {
		return s.conflictOrErr(err, b.AppointmentDate)
	}

	go s.notifyConfirmed(*b)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]*Booking, error) {
	return s.repo.ListByEmail(ctx, email)
}

func duplicateErr(date string) error {
	return fmt.Errorf("%w: you already have an appointment on %s", ErrDuplicate, date)
}

// conflictOrErr maps the race-closing paths (held lock, unique index
// violation) onto the same Conflict the pre-check produces.
func (s *Service) conflictOrErr(err error, date string) error {
	if errors.Is(err, ErrDuplicate) {
		return duplicateErr(date)
	}
	return err
}

// notifyConfirmed runs detached from the request: the response has already
// been decided by the time this fires, and failures are only logged.
func (s *Service) notifyConfirmed(b Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.notifier.BookingConfirmed(ctx, notify.Confirmation{
		Email:           b.Email,
		PatientName:     b.PatientName,
		Treatment:       b.Treatment,
		AppointmentDate: b.AppointmentDate,
		Slot:            b.Slot,
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("booking_id", b.ID.String()).
			Str("email", b.Email).
			Msg("booking confirmation mail failed")
	}
}
