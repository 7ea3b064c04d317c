package itemrequest

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type memRepo struct {
	requests map[string]*ItemRequest
	seq      int
}

func newMemRepo() *memRepo {
	return &memRepo{requests: map[string]*ItemRequest{}}
}

func (m *memRepo) Create(_ context.Context, r *ItemRequest) error {
	m.seq++
	r.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.seq)
	r.CreatedAt = time.Unix(int64(m.seq), 0)
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*ItemRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, f Filter) ([]*ItemRequest, int, error) {
	var out []*ItemRequest
	for _, r := range m.requests {
		if f.RequestorID != "" && r.RequestorID != f.RequestorID {
			continue
		}
		if f.ExcludeRequestorID != "" && r.RequestorID == f.ExcludeRequestorID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.OrderDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	total := len(out)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := total
	if f.Limit > 0 {
		end = min(f.Offset+f.Limit, total)
	}
	return out[f.Offset:end], total, nil
}

type fakeUsers map[string]*user.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fakeAnswers []*item.Item

func (f fakeAnswers) ListByRequestIDs(_ context.Context, ids []string) ([]*item.Item, error) {
	var out []*item.Item
	for _, it := range f {
		for _, id := range ids {
			if it.RequestID != nil && *it.RequestID == id {
				out = append(out, it)
			}
		}
	}
	return out, nil
}

func TestService(t *testing.T) {
	ctx := context.Background()
	users := fakeUsers{
		"alice": {ID: "alice"},
		"bob":   {ID: "bob"},
	}
	repo := newMemRepo()
	answers := fakeAnswers{}
	svc := NewService(repo, users, &answers)

	first, err := svc.Create(ctx, "alice", "Need a ladder")
	require.NoError(t, err)
	assert.Empty(t, first.Items)
	second, err := svc.Create(ctx, "alice", "Need a tent")
	require.NoError(t, err)

	answers = append(answers, &item.Item{ID: "ladder", OwnerID: "bob", RequestID: &first.ID})

	t.Run("Validation", func(t *testing.T) {
		_, err := svc.Create(ctx, "alice", "  ")
		assert.ErrorIs(t, err, ErrDescriptionRequired)

		_, err = svc.Create(ctx, "missing", "x")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("ListMineOldestFirstWithAnswers", func(t *testing.T) {
		list, err := svc.ListMine(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)
		require.Len(t, list[0].Items, 1)
		assert.Equal(t, "ladder", list[0].Items[0].ID)
		assert.Empty(t, list[1].Items)
	})

	t.Run("ListOthersNewestFirst", func(t *testing.T) {
		list, total, err := svc.ListOthers(ctx, "bob", request.OffsetParams{From: 0, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)

		list, _, err = svc.ListOthers(ctx, "alice", request.OffsetParams{From: 0, Size: 10})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("GetByID", func(t *testing.T) {
		got, err := svc.GetByID(ctx, first.ID, "bob")
		require.NoError(t, err)
		assert.Len(t, got.Items, 1)

		_, err = svc.GetByID(ctx, first.ID, "missing")
		assert.ErrorIs(t, err, user.ErrNotFound)

		_, err = svc.GetByID(ctx, "missing", "bob")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := svc.Exists(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.Exists(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
