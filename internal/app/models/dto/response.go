package dto

// Envelope status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the stable response envelope used by every endpoint.
// Successful responses carry {"status":"success","data":...}; failures carry
// {"status":"error","message":...}.
type APIResponse struct {
	Status  string      `json:"status" example:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse creates a success envelope carrying data
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Status: StatusSuccess,
		Data:   data,
	}
}

// NewMessageResponse creates a success envelope carrying only a message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Status:  StatusSuccess,
		Message: message,
	}
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Status:  StatusError,
		Message: message,
	}
}

// PaginationInfo describes the position of a page within a larger result set
type PaginationInfo struct {
	CurrentPage int   `json:"page" example:"1"`
	PageSize    int   `json:"limit" example:"10"`
	TotalItems  int64 `json:"total" example:"42"`
	TotalPages  int   `json:"pages" example:"5"`
}
