package response

// PageResponse is the standard wrapper for page/page_size list endpoints.
type PageResponse[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// NewPageResponse is a helper to quickly create a response
func NewPageResponse[T any](items []T, page, pageSize, total int) PageResponse[T] {
	return PageResponse[T]{
		Items:    nonNil(items),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
}

// OffsetPageResponse wraps from/size list endpoints.
// From echoes the requested offset; the items start at the containing page boundary.
type OffsetPageResponse[T any] struct {
	Items []T `json:"items"`
	From  int `json:"from"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

func NewOffsetPageResponse[T any](items []T, from, size, total int) OffsetPageResponse[T] {
	return OffsetPageResponse[T]{
		Items: nonNil(items),
		From:  from,
		Size:  size,
		Total: total,
	}
}

// nonNil avoids JSON outputting null for empty lists.
func nonNil[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}
