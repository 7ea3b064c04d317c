package booking

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// ValidateCreate decides whether requester may book it for the candidate range.
// A nil requester or item means the lookup found nothing.
// Checks run in a fixed order and the first failure is returned.
func ValidateCreate(c Candidate, requester *user.User, it *item.Item, now time.Time) error {
	if requester == nil {
		return user.ErrNotFound
	}
	if it == nil {
		return item.ErrNotFound
	}
	if !it.Available {
		return ErrItemNotAvailable
	}
	if requester.ID == it.OwnerID {
		return ErrOwnItem
	}
	if c.End.Before(c.Start) {
		return ErrEndBeforeStart
	}
	if c.End.Equal(c.Start) {
		return ErrZeroLengthRange
	}
	// End > Start here, so a future start implies a future end.
	if !c.Start.After(now) {
		return ErrStartInPast
	}
	return nil
}
