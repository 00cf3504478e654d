package types

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Actor is the verified caller identity decoded from a bearer token.
type Actor struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the token carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJI..."`
	ExpiresAt time.Time `json:"expires_at"`
	Login     string    `json:"login" example:"admin"`
	Role      string    `json:"role" example:"admin"`
}
