package dto

import (
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// CreateUserRequest defines the payload for registering a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=64"`
	Password string `json:"password" binding:"required,min=1,max=72"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	Username string `json:"username"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{Username: user.Username}
}
