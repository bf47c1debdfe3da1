package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a roster entry shown to patients when they pick a practitioner.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Specialty string    `db:"specialty" json:"specialty"`
	Slots     []string  `db:"slots" json:"slots"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
