package itemrequest

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserFinder resolves users. Satisfied by user.Service.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// AnswerFinder loads the items created in answer to requests. Satisfied by item.Service.
type AnswerFinder interface {
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, requestorID, description string) (*ItemRequest, error)
	GetByID(ctx context.Context, id, viewerID string) (*ItemRequest, error)
	ListMine(ctx context.Context, requestorID string) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, userID string, page request.OffsetParams) ([]*ItemRequest, int, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo    Repository
	users   UserFinder
	answers AnswerFinder
}

func NewService(repo Repository, users UserFinder, answers AnswerFinder) Service {
	return &service{repo: repo, users: users, answers: answers}
}

func (s *service) Create(ctx context.Context, requestorID, description string) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	req := &ItemRequest{
		Description: description,
		RequestorID: requestorID,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	req.Items = []*item.Item{}
	return req, nil
}

func (s *service) GetByID(ctx context.Context, id, viewerID string) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachAnswers(ctx, []*ItemRequest{req}); err != nil {
		return nil, err
	}
	return req, nil
}

// ListMine returns the requestor's own requests, oldest first.
func (s *service) ListMine(ctx context.Context, requestorID string) ([]*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	list, _, err := s.repo.List(ctx, Filter{RequestorID: requestorID})
	if err != nil {
		return nil, err
	}

	if err := s.attachAnswers(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListOthers pages through everyone else's requests, newest first.
func (s *service) ListOthers(ctx context.Context, userID string, page request.OffsetParams) ([]*ItemRequest, int, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}

	list, total, err := s.repo.List(ctx, Filter{
		ExcludeRequestorID: userID,
		Offset:             page.Offset(),
		Limit:              page.Size,
		OrderDesc:          true,
	})
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachAnswers(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) attachAnswers(ctx context.Context, list []*ItemRequest) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]string, len(list))
	byID := make(map[string]*ItemRequest, len(list))
	for i, req := range list {
		ids[i] = req.ID
		byID[req.ID] = req
		req.Items = []*item.Item{}
	}

	answers, err := s.answers.ListByRequestIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, it := range answers {
		if it.RequestID == nil {
			continue
		}
		if req, ok := byID[*it.RequestID]; ok {
			req.Items = append(req.Items, it)
		}
	}
	return nil
}
