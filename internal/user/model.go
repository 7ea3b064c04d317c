package user

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "user not found")
	ErrEmailAlreadyUsed = apperror.New(apperror.KindConflict, "email already used")
	ErrEmailRequired    = apperror.New(apperror.KindInvalidInput, "email is required")
	ErrNameRequired     = apperror.New(apperror.KindInvalidInput, "name is required")
)

// User represents a user in the system. A user can both own items and book other users' items.
type User struct {
	ID        string // UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// Filter defines options for listing users.
type Filter struct {
	Email string

	Page     int
	PageSize int
}
