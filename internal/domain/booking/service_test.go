package booking

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentalcare/dentalcare/internal/platform/notify"
)

// -- Mock Repository --

type mockRepo struct {
	bookings  map[uuid.UUID]*Booking
	createErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (m *mockRepo) Create(_ context.Context, b *Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	b.ID = uuid.New()
	stored := *b
	m.bookings[b.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (m *mockRepo) ListByEmail(_ context.Context, email string) ([]*Booking, error) {
	items := make([]*Booking, 0)
	for _, b := range m.bookings {
		if b.Email == email {
			items = append(items, b)
		}
	}
	return items, nil
}

func (m *mockRepo) ExistsTriple(_ context.Context, email, treatment, appointmentDate string) (bool, error) {
	for _, b := range m.bookings {
		if b.Email == email && b.Treatment == treatment && b.AppointmentDate == appointmentDate {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) MarkPaid(_ context.Context, id uuid.UUID, transactionID string) (int64, error) {
	b, ok := m.bookings[id]
	if !ok {
		return 0, nil
	}
	b.Paid = true
	b.TransactionID = &transactionID
	return 1, nil
}

func (m *mockRepo) SlotsBookedOn(_ context.Context, date string) (map[string][]string, error) {
	byTreatment := make(map[string][]string)
	for _, b := range m.bookings {
		if b.AppointmentDate == date {
			byTreatment[b.Treatment] = append(byTreatment[b.Treatment], b.Slot)
		}
	}
	return byTreatment, nil
}

// mockNotifier signals each delivery attempt on a channel so tests can wait
// for the detached goroutine without sleeping.
type mockNotifier struct {
	sent chan notify.Confirmation
	err  error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{sent: make(chan notify.Confirmation, 8)}
}

func (m *mockNotifier) BookingConfirmed(_ context.Context, c notify.Confirmation) error {
	m.sent <- c
	return m.err
}

func (m *mockNotifier) waitOne(t *testing.T) notify.Confirmation {
	t.Helper()
	select {
	case c := <-m.sent:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no notification attempt within 2s")
		return notify.Confirmation{}
	}
}

func (m *mockNotifier) expectNone(t *testing.T) {
	t.Helper()
	select {
	case c := <-m.sent:
		t.Fatalf("unexpected notification: %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func newTestBookingService() (*Service, *mockRepo, *mockNotifier) {
	repo := newMockRepo()
	notifier := newMockNotifier()
	return NewService(repo, notifier, nil, zerolog.Nop()), repo, notifier
}

func sample() *Booking {
	return &Booking{
		Treatment:       "Cleaning",
		AppointmentDate: "1 January 2023",
		Slot:            "9-10",
		Email:           "pat@example.com",
		PatientName:     "Pat",
		Price:           30,
	}
}

func TestSubmit_PersistsUnpaidAndNotifiesOnce(t *testing.T) {
	svc, repo, notifier := newTestBookingService()

	b := sample()
	b.Paid = true // must not be honored from the request
	if err := svc.Submit(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, ok := repo.bookings[b.ID]
	if !ok {
		t.Fatal("booking was not persisted")
	}
	if stored.Paid {
		t.Error("expected booking persisted with paid=false")
	}
	if stored.TransactionID != nil {
		t.Error("expected no transaction id on a fresh booking")
	}

	c := notifier.waitOne(t)
	if c.Email != "pat@example.com" || c.Treatment != "Cleaning" || c.Slot != "9-10" {
		t.Errorf("unexpected confirmation: %+v", c)
	}
	notifier.expectNone(t)
}

func TestSubmit_DuplicateTripleRejected(t *testing.T) {
	svc, repo, notifier := newTestBookingService()

	if err := svc.Submit(context.Background(), sample()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	notifier.waitOne(t)

	dup := sample()
	dup.Slot = "10-11" // different slot, same triple
	err := svc.Submit(context.Background(), dup)
	if err == nil {
		t.Fatal("expected duplicate rejection")
	}
	if !strings.Contains(err.Error(), "1 January 2023") {
		t.Errorf("rejection message should name the date, got %q", err)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("expected 1 persisted booking, got %d", len(repo.bookings))
	}
	notifier.expectNone(t)
}

func TestSubmit_SameTripleDifferentDateAccepted(t *testing.T) {
	svc, _, notifier := newTestBookingService()

	if err := svc.Submit(context.Background(), sample()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	notifier.waitOne(t)

	next := sample()
	next.AppointmentDate = "2 January 2023"
	if err := svc.Submit(context.Background(), next); err != nil {
		t.Fatalf("expected acceptance on a different date: %v", err)
	}
	notifier.waitOne(t)
}

func TestSubmit_UniqueIndexViolationMapsToConflict(t *testing.T) {
	svc, repo, _ := newTestBookingService()
	repo.createErr = ErrDuplicate

	err := svc.Submit(context.Background(), sample())
	if err == nil {
		t.Fatal("expected conflict")
	}
	if !strings.Contains(err.Error(), "1 January 2023") {
		t.Errorf("conflict message should name the date, got %q", err)
	}
}

func TestSubmit_NotifierFailureDoesNotFailBooking(t *testing.T) {
	svc, repo, notifier := newTestBookingService()
	notifier.err = fmt.Errorf("smtp down")

	if err := svc.Submit(context.Background(), sample()); err != nil {
		t.Fatalf("booking must succeed regardless of notifier: %v", err)
	}
	notifier.waitOne(t)
	if len(repo.bookings) != 1 {
		t.Error("booking should remain persisted after a failed notification")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newTestBookingService()
	if _, err := svc.GetByID(context.Background(), uuid.New()); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
