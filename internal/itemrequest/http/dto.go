package http

import (
	"time"

	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type ListOthersRequest struct {
	request.OffsetParams
}

type ItemRequestResponse struct {
	ID          string                  `json:"id"`
	Description string                  `json:"description"`
	RequestorID string                  `json:"requestor_id"`
	CreatedAt   time.Time               `json:"created"`
	Items       []itemHttp.ItemResponse `json:"items"`
}

func NewItemRequestResponse(r *itemrequest.ItemRequest) ItemRequestResponse {
	resp := ItemRequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		CreatedAt:   r.CreatedAt,
		Items:       make([]itemHttp.ItemResponse, len(r.Items)),
	}
	for i, it := range r.Items {
		resp.Items[i] = itemHttp.NewItemResponse(it)
	}
	return resp
}
