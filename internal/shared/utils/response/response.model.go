package response

type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Validation or error details
}

// ListData wraps list payloads with paging information
type ListData[T any] struct {
	Items  []T `json:"items"`
	Count  int `json:"count"`
	Total  int `json:"total"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// NewListData slices items by limit/offset; limit <= 0 returns everything
func NewListData[T any](items []T, limit, offset int) ListData[T] {
	total := len(items)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	page := items[offset:end]
	if page == nil {
		page = []T{}
	}
	return ListData[T]{
		Items:  page,
		Count:  len(page),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
