package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		BookerID: auth.GetUserID(c),
		ItemID:   body.ItemID,
		Start:    body.Start,
		End:      body.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Decide approves or rejects a booking. Only the item owner may decide.
func (h *Handler) Decide(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	var query DecideBookingRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	b, err := h.service.Decide(c.Request.Context(), uri.ID, auth.GetUserID(c), *query.Approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListByBooker lists the bookings the caller made.
func (h *Handler) ListByBooker(c *gin.Context) {
	h.list(c, booking.RoleBooker)
}

// ListByOwner lists the bookings of items the caller owns.
func (h *Handler) ListByOwner(c *gin.Context) {
	h.list(c, booking.RoleOwner)
}

func (h *Handler) list(c *gin.Context, role booking.Role) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	state, err := booking.ParseState(query.State)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, total, err := h.service.List(c.Request.Context(), booking.ListRequest{
		SubjectID: auth.GetUserID(c),
		Role:      role,
		State:     state,
		From:      query.From,
		Size:      query.Size,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewOffsetPageResponse(items, query.From, query.Size, total))
}
