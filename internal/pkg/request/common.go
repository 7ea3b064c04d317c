package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams are the page/page_size query parameters used by administrative list endpoints.
type ListParams struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}

// OffsetParams are the from/size query parameters used by the sharing endpoints.
// From is an item offset, Size the page length.
type OffsetParams struct {
	From int `form:"from,default=0" binding:"min=0"`
	Size int `form:"size,default=10" binding:"min=1,max=100"`
}

// PageIndex converts an item offset into a zero-based page index.
// Offsets that are not a multiple of size round down to the containing page.
func PageIndex(from, size int) int {
	if from > 0 && size > 0 {
		return from / size
	}
	return 0
}

// Offset returns the row offset of the page that contains from.
func (p OffsetParams) Offset() int {
	return PageIndex(p.From, p.Size) * p.Size
}
