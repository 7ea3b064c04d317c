package itemrequest

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(apperror.KindNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(apperror.KindInvalidInput, "description is required")
)

// ItemRequest is a user's request for an item nobody has listed yet.
// Other users answer it by creating items that reference it.
type ItemRequest struct {
	ID          string
	Description string
	RequestorID string
	CreatedAt   time.Time

	// Items created in answer to this request. Filled on read.
	Items []*item.Item
}

// Filter defines parameters for listing requests.
type Filter struct {
	RequestorID        string // only requests of this user
	ExcludeRequestorID string // only requests of everyone else
	Offset             int
	Limit              int // 0 means no limit
	OrderDesc          bool
}
