package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dentalcare/dentalcare/internal/platform/auth"
)

type Service struct {
	repo   Repository
	issuer *auth.Issuer
}

func NewService(repo Repository, issuer *auth.Issuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Login upserts the account for the email and returns a fresh signed token.
// There is no password; possession of the mailbox is the credential model.
func (s *Service) Login(ctx context.Context, email string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("a valid email is required")
	}

	u, err := s.repo.Upsert(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("upsert user: %w", err)
	}
	token, err := s.issuer.Issue(email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// IsAdmin satisfies auth.AdminChecker. An unknown email is simply not an
// admin, not an error.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Promote(ctx context.Context, email string) error {
	return s.repo.SetRole(ctx, email, RoleAdmin)
}
