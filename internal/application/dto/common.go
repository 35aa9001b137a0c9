package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmation body for deletes and similar operations.
type MessageResponse struct {
	Message string `json:"message"`
}
