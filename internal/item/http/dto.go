package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/file"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

// ItemTag is a brief representation of an item.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingTag is a booking as shown next to the item it reserves.
type BookingTag struct {
	ID       string    `json:"id"`
	BookerID string    `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created"`
}

type ItemResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Available    bool    `json:"available"`
	OwnerID      string  `json:"owner_id"`
	RequestID    *string `json:"request_id"`
	PhotoURL     *string `json:"photo_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

// ItemDetailResponse is an item decorated for the viewer: the owner sees
// the last and next booking, everyone sees the comments.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingTag       `json:"last_booking"`
	NextBooking *BookingTag       `json:"next_booking"`
	Comments    []CommentResponse `json:"comments"`
}

type ListItemsRequest struct {
	request.OffsetParams
}

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

// UpdateItemRequest uses pointers to distinguish "not sent" from "sent as empty".
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	resp := ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
	}
	if it.PhotoFileID != nil {
		photo := file.FileURL(*it.PhotoFileID)
		thumb := file.ThumbnailURL(*it.PhotoFileID)
		resp.PhotoURL = &photo
		resp.ThumbnailURL = &thumb
	}
	return resp
}

func NewItemDetailResponse(it *item.Item, p booking.Projection, comments []*item.Comment) ItemDetailResponse {
	resp := ItemDetailResponse{
		ItemResponse: NewItemResponse(it),
		LastBooking:  newBookingTag(p.Last),
		NextBooking:  newBookingTag(p.Next),
		Comments:     make([]CommentResponse, len(comments)),
	}
	for i, c := range comments {
		resp.Comments[i] = NewCommentResponse(c)
	}
	return resp
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt,
	}
}

func newBookingTag(b *booking.Booking) *BookingTag {
	if b == nil {
		return nil
	}
	return &BookingTag{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}
