package dto

// Response status values used in the envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope returned by every endpoint:
// {status, message, data, pagination?} on success,
// {status, message, error} on failure.
type APIResponse struct {
	Status     string          `json:"status"`
	Message    string          `json:"message,omitempty"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Error      *ErrorDetail    `json:"error,omitempty"`
}

// PaginationInfo describes the page of a list response.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// NewSuccessResponse creates a success envelope.
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// NewPaginatedResponse creates a success envelope with pagination metadata.
func NewPaginatedResponse(items interface{}, pagination PaginationInfo, message string) APIResponse {
	return APIResponse{
		Status:     StatusSuccess,
		Message:    message,
		Data:       items,
		Pagination: &pagination,
	}
}
