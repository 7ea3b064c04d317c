package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type CreateRequest struct {
	Name  string
	Email string
}

// UpdateRequest is a partial update: only non-nil fields overwrite.
type UpdateRequest struct {
	Name  *string
	Email *string
}

// Service defines business logic related to users.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new user Service.
func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}

	// Check if email is already used.
	if err := s.ensureEmailFree(ctx, cleanEmail, ""); err != nil {
		return nil, err
	}

	u := &User{
		Name:  name,
		Email: cleanEmail,
	}

	// The unique index still guards against a concurrent insert.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.Name = name
	}

	if req.Email != nil {
		cleanEmail := normalizeEmail(*req.Email)
		if cleanEmail == "" {
			return nil, ErrEmailRequired
		}
		if cleanEmail != u.Email {
			if err := s.ensureEmailFree(ctx, cleanEmail, u.ID); err != nil {
				return nil, err
			}
		}
		u.Email = cleanEmail
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ensureEmailFree fails with ErrEmailAlreadyUsed when another user owns the email.
func (s *service) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		if existing.ID == selfID {
			return nil
		}
		return ErrEmailAlreadyUsed
	}
	// If the error is something other than "not found", propagate it.
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check existing email: %w", err)
	}
	return nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
