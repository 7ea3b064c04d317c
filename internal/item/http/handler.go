package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/file"
	fileHttp "github.com/nekogravitycat/shareit-backend/internal/file/http"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	itemService    item.Service
	bookingService booking.Service
	fileHandler    *fileHttp.Handler
	maxPhotoBytes  int64
}

func NewHandler(itemService item.Service, bookingService booking.Service, fileHandler *fileHttp.Handler, maxPhotoBytes int64) *Handler {
	return &Handler{
		itemService:    itemService,
		bookingService: bookingService,
		fileHandler:    fileHandler,
		maxPhotoBytes:  maxPhotoBytes,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	it, err := h.itemService.Create(c.Request.Context(), auth.GetUserID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

// Update applies a partial update; only the owner may edit.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	it, err := h.itemService.Update(c.Request.Context(), uri.ID, auth.GetUserID(c), item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	ctx := c.Request.Context()
	it, err := h.itemService.GetByID(ctx, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.decorate(ctx, it, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List returns the caller's own items, each decorated like Get.
func (h *Handler) List(c *gin.Context) {
	var query ListItemsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	ctx := c.Request.Context()
	viewerID := auth.GetUserID(c)

	items, total, err := h.itemService.ListByOwner(ctx, viewerID, query.OffsetParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ItemDetailResponse, len(items))
	for i, it := range items {
		out[i], err = h.decorate(ctx, it, viewerID)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, response.NewOffsetPageResponse(out, query.From, query.Size, total))
}

func (h *Handler) decorate(ctx context.Context, it *item.Item, viewerID string) (ItemDetailResponse, error) {
	projection, err := h.bookingService.Project(ctx, it, viewerID)
	if err != nil {
		return ItemDetailResponse{}, err
	}
	comments, err := h.itemService.ListComments(ctx, it.ID)
	if err != nil {
		return ItemDetailResponse{}, err
	}
	return NewItemDetailResponse(it, projection, comments), nil
}

func (h *Handler) AddComment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	var body CreateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	comment, err := h.itemService.AddComment(c.Request.Context(), uri.ID, auth.GetUserID(c), body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCommentResponse(comment))
}

// UploadPhoto replaces the item's photo. Ownership is checked before anything is stored.
func (h *Handler) UploadPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	userID := auth.GetUserID(c)
	h.fileHandler.HandleFileUpload(c, fileHttp.FileUploadConfig{
		FormFieldName: "file",
		MaxSizeBytes:  h.maxPhotoBytes,
		AllowedTypes:  file.ImageTypes,
		BeforeUpload: func(ctx context.Context) error {
			_, err := h.itemService.CheckOwner(ctx, uri.ID, userID)
			return err
		},
		AfterUpload: func(ctx context.Context, fileID string) error {
			_, err := h.itemService.SetPhoto(ctx, uri.ID, userID, fileID)
			return err
		},
	})
}
