package auth

// LoginRequest represents the login request body
type LoginRequest struct {
	Login    string `json:"login" validate:"required" example:"admin"`
	Password string `json:"password" validate:"required" example:"admin"`
}
