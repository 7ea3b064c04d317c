package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/clock"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserFinder resolves users. Satisfied by user.Service.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemFinder resolves items. Satisfied by item.Service.
type ItemFinder interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type CreateRequest struct {
	BookerID string
	ItemID   string
	Start    time.Time
	End      time.Time
}

type ListRequest struct {
	SubjectID string
	Role      Role
	State     State
	From      int
	Size      int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Decide(ctx context.Context, id, deciderID string, approve bool) (*Booking, error)
	GetByID(ctx context.Context, id, viewerID string) (*Booking, error)
	List(ctx context.Context, req ListRequest) ([]*Booking, int, error)
	Project(ctx context.Context, it *item.Item, viewerID string) (Projection, error)
}

type service struct {
	repo  Repository
	users UserFinder
	items ItemFinder
	clock clock.Clock
}

func NewService(repo Repository, users UserFinder, items ItemFinder, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	booker, err := s.users.GetByID(ctx, req.BookerID)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil && !errors.Is(err, item.ErrNotFound) {
		return nil, err
	}

	candidate := Candidate{Start: req.Start, End: req.End}
	if err := ValidateCreate(candidate, booker, it, s.clock.Now()); err != nil {
		return nil, err
	}

	b := &Booking{
		ItemID:      it.ID,
		BookerID:    booker.ID,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerName:  booker.Name,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	zerolog.Ctx(ctx).Info().
		Str("booking_id", b.ID).
		Str("item_id", b.ItemID).
		Str("booker_id", b.BookerID).
		Msg("booking created")

	return b, nil
}

// Decide applies the owner's approval or rejection.
// Anyone but the item owner gets ErrNotFound so the booking's existence is not revealed.
// Rejection is allowed from any status; approving an approved booking fails.
func (s *service) Decide(ctx context.Context, id, deciderID string, approve bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != deciderID {
		return nil, ErrNotFound
	}

	previous := b.Status
	switch {
	case approve && b.Status == StatusApproved:
		return nil, ErrAlreadyApproved
	case approve:
		b.Status = StatusApproved
	default:
		b.Status = StatusRejected
	}

	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingDecision(string(b.Status))
	zerolog.Ctx(ctx).Info().
		Str("booking_id", b.ID).
		Str("from", string(previous)).
		Str("to", string(b.Status)).
		Msg("booking decided")

	return b, nil
}

// GetByID returns the booking to its booker or the item owner, ErrNotFound to anyone else.
func (s *service) GetByID(ctx context.Context, id, viewerID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewerID != b.BookerID && viewerID != b.ItemOwnerID {
		return nil, ErrNotFound
	}
	return b, nil
}

// List returns one page of the subject's bookings, latest end first.
// From is an item offset rounded down to the start of its page.
func (s *service) List(ctx context.Context, req ListRequest) ([]*Booking, int, error) {
	if !req.State.Valid() {
		return nil, 0, ErrUnsupportedState
	}
	if req.From < 0 || req.Size <= 0 {
		return nil, 0, ErrInvalidPage
	}

	if _, err := s.users.GetByID(ctx, req.SubjectID); err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, Query{
		SubjectID: req.SubjectID,
		Role:      req.Role,
		State:     req.State,
		Now:       s.clock.Now(),
		Offset:    request.PageIndex(req.From, req.Size) * req.Size,
		Limit:     req.Size,
	})
}

// Project returns the last and next booking of it as seen by viewerID.
// Non-owners always get an empty projection.
func (s *service) Project(ctx context.Context, it *item.Item, viewerID string) (Projection, error) {
	if it == nil || it.OwnerID != viewerID {
		return Projection{}, nil
	}

	bookings, err := s.repo.ListByItem(ctx, it.ID)
	if err != nil {
		return Projection{}, err
	}
	return Project(bookings, viewerID, s.clock.Now()), nil
}
