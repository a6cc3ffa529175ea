package dto

// PageQuery is the page/limit pair accepted by every list endpoint
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// ListResponse is the envelope of every paginated list
type ListResponse[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse is a mutation result: a message plus the affected resource
type DataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
