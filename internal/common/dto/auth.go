package dto

// LoginRequest represents a login request
type LoginRequest struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

// LoginResponse represents a successful login response. The user
// payload never carries the login PIN.
type LoginResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
}
