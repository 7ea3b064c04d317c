package item

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(apperror.KindNotFound, "item not found")
	ErrRequestNotFound     = apperror.New(apperror.KindNotFound, "item request not found")
	ErrNotOwner            = apperror.New(apperror.KindForbidden, "only the owner can modify the item")
	ErrOwnerCannotComment  = apperror.New(apperror.KindForbidden, "owner cannot comment on own item")
	ErrNoFinishedBooking   = apperror.New(apperror.KindNotAvailable, "user has no finished booking of this item")
	ErrNameRequired        = apperror.New(apperror.KindInvalidInput, "name is required")
	ErrDescriptionRequired = apperror.New(apperror.KindInvalidInput, "description is required")
	ErrAvailableRequired   = apperror.New(apperror.KindInvalidInput, "available is required")
	ErrTextRequired        = apperror.New(apperror.KindInvalidInput, "comment text is required")
)

// Item is a thing a user owns and lends. Only available items can be booked.
type Item struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
	RequestID   *string // item request this item answers
	PhotoFileID *string
	CreatedAt   time.Time
}

// Comment is feedback left by a past booker.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// Filter defines parameters for listing items.
type Filter struct {
	OwnerID string
	Offset  int
	Limit   int
}
