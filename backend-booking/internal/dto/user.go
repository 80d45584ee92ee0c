package dto

import (
	"strings"
	"time"

	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
)

// AuthRequest is the body of register and login
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are non-blank
func (r *AuthRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Username) == "" {
		return false, "username is required"
	}
	if strings.TrimSpace(r.Password) == "" {
		return false, "password is required"
	}
	return true, ""
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateUserRequest is the admin request to create a user with a role
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks required fields
func (r *CreateUserRequest) Validate() (bool, string) {
	auth := AuthRequest{Username: r.Username, Password: r.Password}
	return auth.Validate()
}

// UpdateUserRequest is the admin request to change a user. Omitted fields are kept.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// Validate rejects a blank username when one is given
func (r *UpdateUserRequest) Validate() (bool, string) {
	if r.Username != nil && strings.TrimSpace(*r.Username) == "" {
		return false, "username must not be blank"
	}
	return true, ""
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
