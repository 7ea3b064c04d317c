package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
// State is parsed by the handler so an unknown tag maps to UNSUPPORTED_STATE, not INVALID_INPUT.
type ListBookingsRequest struct {
	request.OffsetParams
	State string `form:"state"`
}

// DecideBookingRequest is the query of PATCH /bookings/:id.
type DecideBookingRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}

type CreateBookingRequest struct {
	ItemID string    `json:"item_id" binding:"required,uuid"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

type BookingResponse struct {
	ID        string           `json:"id"`
	Item      itemHttp.ItemTag `json:"item"`
	Booker    userHttp.UserTag `json:"booker"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Item:      itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:    userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		Start:     b.Start,
		End:       b.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
