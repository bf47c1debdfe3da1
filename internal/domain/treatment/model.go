package treatment

import (
	"time"

	"github.com/google/uuid"
)

// Treatment maps to the treatment table. Slots is the full daily capacity
// template in display order, not a date-specific list.
type Treatment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Price     float64   `db:"price" json:"price"`
	Slots     []string  `db:"slots" json:"slots"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Availability is a treatment's slot template minus the slots already
// claimed by bookings on the queried date.
type Availability struct {
	TreatmentName  string   `json:"name"`
	Price          float64  `json:"price"`
	RemainingSlots []string `json:"slots"`
}

// RemainingSlots subtracts the booked slot labels from the template,
// preserving template order. A label either fully remains or fully
// disappears: duplicate template entries are kept when unbooked and all
// removed when booked, never decremented by count. The template itself is
// not modified.
func RemainingSlots(template []string, booked map[string]struct{}) []string {
	remaining := make([]string, 0, len(template))
	for _, slot := range template {
		if _, taken := booked[slot]; taken {
			continue
		}
		remaining = append(remaining, slot)
	}
	return remaining
}
