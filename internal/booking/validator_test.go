package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

func TestValidateCreate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	owner := &user.User{ID: "owner"}
	booker := &user.User{ID: "booker"}
	available := &item.Item{ID: "item", OwnerID: owner.ID, Available: true}
	unavailable := &item.Item{ID: "item", OwnerID: owner.ID, Available: false}

	future := Candidate{Start: now.Add(24 * time.Hour), End: now.Add(7 * 24 * time.Hour)}

	tests := []struct {
		name      string
		candidate Candidate
		requester *user.User
		item      *item.Item
		wantErr   error
		wantKind  apperror.Kind
	}{
		{
			name:      "valid",
			candidate: future,
			requester: booker,
			item:      available,
		},
		{
			name:      "unknown requester",
			candidate: future,
			requester: nil,
			item:      available,
			wantErr:   user.ErrNotFound,
			wantKind:  apperror.KindNotFound,
		},
		{
			name:      "unknown item",
			candidate: future,
			requester: booker,
			item:      nil,
			wantErr:   item.ErrNotFound,
			wantKind:  apperror.KindNotFound,
		},
		{
			name:      "unavailable item wins over bad dates",
			candidate: Candidate{Start: now.Add(-time.Hour), End: now.Add(-2 * time.Hour)},
			requester: booker,
			item:      unavailable,
			wantErr:   ErrItemNotAvailable,
			wantKind:  apperror.KindNotAvailable,
		},
		{
			name:      "own item",
			candidate: future,
			requester: owner,
			item:      available,
			wantErr:   ErrOwnItem,
			wantKind:  apperror.KindForbidden,
		},
		{
			name:      "end before start",
			candidate: Candidate{Start: now.Add(48 * time.Hour), End: now.Add(24 * time.Hour)},
			requester: booker,
			item:      available,
			wantErr:   ErrEndBeforeStart,
			wantKind:  apperror.KindInvalidDateRange,
		},
		{
			name:      "zero length",
			candidate: Candidate{Start: now.Add(24 * time.Hour), End: now.Add(24 * time.Hour)},
			requester: booker,
			item:      available,
			wantErr:   ErrZeroLengthRange,
			wantKind:  apperror.KindInvalidDateRange,
		},
		{
			name:      "start in the past",
			candidate: Candidate{Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
			requester: booker,
			item:      available,
			wantErr:   ErrStartInPast,
			wantKind:  apperror.KindInvalidDateRange,
		},
		{
			name:      "start exactly now",
			candidate: Candidate{Start: now, End: now.Add(time.Hour)},
			requester: booker,
			item:      available,
			wantErr:   ErrStartInPast,
			wantKind:  apperror.KindInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(tt.candidate, tt.requester, tt.item, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
		})
	}
}

func TestValidateCreate_OwnerIsAlwaysForbidden(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	owner := &user.User{ID: "owner"}
	it := &item.Item{ID: "item", OwnerID: owner.ID, Available: true}

	ranges := []Candidate{
		{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
		{Start: now.Add(2 * time.Hour), End: now.Add(time.Hour)},
		{Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
	}
	for _, c := range ranges {
		assert.ErrorIs(t, ValidateCreate(c, owner, it, now), ErrOwnItem)
	}
}
