package services

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for bearer token management.
type TokenSvcFacade interface {
	// IssueToken persists a new grant for the user and returns the signed JWT carrying it.
	IssueToken(ctx context.Context, user *domain.User) (string, *domain.AuthToken, error)

	// ValidateToken verifies the JWT and checks that its grant has not been revoked.
	ValidateToken(ctx context.Context, tokenString string) (*domain.AuthToken, error)

	// RevokeToken deletes a grant so that JWTs referencing it stop validating.
	RevokeToken(ctx context.Context, tokenID string) error
}
