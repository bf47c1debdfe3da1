package notify

import "context"

// Confirmation carries the booking details the patient is mailed after a
// successful booking.
type Confirmation struct {
	Email           string
	PatientName     string
	Treatment       string
	AppointmentDate string
	Slot            string
}

// Notifier sends a booking confirmation. Implementations are best-effort:
// callers log failures and move on, they never fail the booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, c Confirmation) error
}
