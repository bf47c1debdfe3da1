package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	// Upsert creates the user if the email is new and is a no-op update
	// otherwise; the role is never touched by an upsert.
	Upsert(ctx context.Context, email string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	SetRole(ctx context.Context, email, role string) error
}
