package dto

import (
	"time"

	"github.com/ubuntu-bounty/crm/internal/apiserver/database"
)

// CreateUserRequest represents a request to create a system user.
// LoginPIN falls back to the system default when omitted.
type CreateUserRequest struct {
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Email        string `json:"email" binding:"required"`
	PhoneNumber1 string `json:"phone_number_1"`
	PhoneNumber2 string `json:"phone_number_2"`
	UserType     string `json:"user_type" binding:"required,oneof=super_admin view_edit view_only"`
	LoginPIN     string `json:"login_pin"`
}

// UpdateUserRequest represents a request to update a system user.
// Empty fields are left unchanged.
type UpdateUserRequest struct {
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	PhoneNumber1 string `json:"phone_number_1"`
	PhoneNumber2 string `json:"phone_number_2"`
	UserType     string `json:"user_type" binding:"omitempty,oneof=super_admin view_edit view_only"`
	LoginPIN     string `json:"login_pin"`
}

// UserResponse is a SystemUser with the credential stripped
type UserResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PhoneNumber1 string    `json:"phone_number_1"`
	PhoneNumber2 string    `json:"phone_number_2"`
	UserType     string    `json:"user_type"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromUser converts a SystemUser row into its response shape
func FromUser(u *database.SystemUser) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		Email:        u.Email,
		PhoneNumber1: u.PhoneNumber1,
		PhoneNumber2: u.PhoneNumber2,
		UserType:     string(u.UserType),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

// FromUsers converts a slice of SystemUser rows
func FromUsers(users []*database.SystemUser) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i, u := range users {
		out[i] = FromUser(u)
	}
	return out
}
