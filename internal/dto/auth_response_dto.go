package dto

import (
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// CreateAuthTokenRequest carries the credentials exchanged for a bearer token.
type CreateAuthTokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthTokenResponse describes an issued token. Token is the value to send as
// "Authorization: Bearer <token>".
type AuthTokenResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// UserWithTokenResponse is returned by both registration and login.
type UserWithTokenResponse struct {
	User      UserResponse      `json:"user"`
	AuthToken AuthTokenResponse `json:"auth_token"`
}

// ToUserWithTokenResponse builds the registration/login response.
func ToUserWithTokenResponse(user *domain.User, signed string, token *domain.AuthToken) UserWithTokenResponse {
	return UserWithTokenResponse{
		User:      ToUserResponse(user),
		AuthToken: AuthTokenResponse{ID: token.ID, Token: signed},
	}
}
