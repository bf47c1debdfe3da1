package user

import "time"

const RoleAdmin = "admin"

// User is an account keyed by email. Role is nil for regular patients and
// "admin" for staff.
type User struct {
	Email     string    `db:"email" json:"email"`
	Role      *string   `db:"role" json:"role,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role != nil && *u.Role == RoleAdmin
}
