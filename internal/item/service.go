package item

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/clock"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserFinder resolves users. Satisfied by user.Service.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// RequestLookup checks that an item request exists. Satisfied by itemrequest.Service.
type RequestLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// BookingHistory answers whether a user has finished a booking of an item.
// Satisfied by booking.Repository.
type BookingHistory interface {
	HasFinishedBooking(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error)
}

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *string
}

// UpdateRequest is a partial update: only non-nil fields overwrite.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, id, editorID string, req UpdateRequest) (*Item, error)
	ListByOwner(ctx context.Context, ownerID string, page request.OffsetParams) ([]*Item, int, error)
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*Item, error)
	CheckOwner(ctx context.Context, id, editorID string) (*Item, error)
	SetPhoto(ctx context.Context, id, editorID, fileID string) (*Item, error)

	AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error)
	ListComments(ctx context.Context, itemID string) ([]*Comment, error)
}

type service struct {
	repo     Repository
	users    UserFinder
	requests RequestLookup
	history  BookingHistory
	clock    clock.Clock
}

func NewService(repo Repository, users UserFinder, requests RequestLookup, history BookingHistory, clk clock.Clock) Service {
	return &service{
		repo:     repo,
		users:    users,
		requests: requests,
		history:  history,
		clock:    clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	if req.RequestID != nil {
		ok, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRequestNotFound
		}
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id, editorID string, req UpdateRequest) (*Item, error) {
	it, err := s.CheckOwner(ctx, id, editorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		it.Name = *req.Name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// CheckOwner loads the item and fails with ErrNotOwner unless editorID owns it.
func (s *service) CheckOwner(ctx context.Context, id, editorID string) (*Item, error) {
	if _, err := s.users.GetByID(ctx, editorID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if it.OwnerID != editorID {
		return nil, ErrNotOwner
	}
	return it, nil
}

func (s *service) SetPhoto(ctx context.Context, id, editorID, fileID string) (*Item, error) {
	it, err := s.CheckOwner(ctx, id, editorID)
	if err != nil {
		return nil, err
	}

	it.PhotoFileID = &fileID
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, page request.OffsetParams) ([]*Item, int, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, Filter{
		OwnerID: ownerID,
		Offset:  page.Offset(),
		Limit:   page.Size,
	})
}

func (s *service) ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*Item, error) {
	return s.repo.ListByRequestIDs(ctx, requestIDs)
}

// AddComment lets a past booker of the item leave a comment. The owner cannot comment.
func (s *service) AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if it.OwnerID == authorID {
		return nil, ErrOwnerCannotComment
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	finished, err := s.history.HasFinishedBooking(ctx, authorID, itemID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, ErrNoFinishedBooking
	}

	c := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListComments(ctx context.Context, itemID string) ([]*Comment, error) {
	return s.repo.ListComments(ctx, itemID)
}
