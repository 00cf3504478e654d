package api

// Response is the envelope for messages and errors returned by the API.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty" example:"User revoked"`
	Error     string `json:"error,omitempty" example:"user not found"`
	RequestID string `json:"request_id,omitempty"`
}
