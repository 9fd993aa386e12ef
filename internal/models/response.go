package models

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse is the uniform success envelope for deletions and logout
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
