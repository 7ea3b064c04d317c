package booking

import (
	"strings"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(apperror.KindNotFound, "booking not found")
	ErrItemNotAvailable   = apperror.New(apperror.KindNotAvailable, "item is not available for booking")
	ErrOwnItem            = apperror.New(apperror.KindForbidden, "cannot book own item")
	ErrEndBeforeStart     = apperror.New(apperror.KindInvalidDateRange, "end must be after start")
	ErrZeroLengthRange    = apperror.New(apperror.KindInvalidDateRange, "start and end must not be equal")
	ErrStartInPast        = apperror.New(apperror.KindInvalidDateRange, "start must be in the future")
	ErrAlreadyApproved    = apperror.New(apperror.KindAlreadyApproved, "booking is already approved")
	ErrUnsupportedState   = apperror.New(apperror.KindUnsupportedState, "Unknown state: UNSUPPORTED_STATUS")
	ErrInvalidPage        = apperror.New(apperror.KindInvalidInput, "size must be positive and from must not be negative")
	ErrConcurrentDecision = apperror.New(apperror.KindConflict, "booking was modified by another request, retry")
)

// Status is the lifecycle tag of a booking.
// WAITING is initial; APPROVED and REJECTED are set only by the owner's decision.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// State selects which of a subject's bookings a list returns.
// CURRENT, PAST and FUTURE are evaluated against "now"; WAITING and REJECTED match the status.
// There is no APPROVED filter.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func (s State) Valid() bool {
	switch s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return true
	}
	return false
}

// ParseState converts a client-supplied filter tag. An empty tag means ALL.
func ParseState(raw string) (State, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return StateAll, nil
	}
	s := State(raw)
	if !s.Valid() {
		return "", ErrUnsupportedState
	}
	return s, nil
}

// Role selects whose bookings a list is scoped to.
type Role int

const (
	RoleBooker Role = iota // bookings made by the subject
	RoleOwner              // bookings of items the subject owns
)

func (r Role) String() string {
	switch r {
	case RoleBooker:
		return "BOOKER"
	case RoleOwner:
		return "OWNER"
	}
	return "UNKNOWN"
}

// Booking is a time-bounded reservation of an item by a user.
type Booking struct {
	ID       string
	ItemID   string
	BookerID string
	Start    time.Time
	End      time.Time
	Status   Status

	// Read side, resolved from the item and booker.
	ItemName    string
	ItemOwnerID string
	BookerName  string

	// Version increases on every status change and guards concurrent decisions.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Candidate is the requested time range of a booking that does not exist yet.
type Candidate struct {
	Start time.Time
	End   time.Time
}

// Projection is the owner's view of an item's neighbouring bookings.
type Projection struct {
	Last *Booking
	Next *Booking
}

// Query is what the repository needs to list one page of a subject's bookings.
type Query struct {
	SubjectID string
	Role      Role
	State     State
	Now       time.Time
	Offset    int
	Limit     int
}
