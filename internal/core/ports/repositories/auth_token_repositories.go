package repositories

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// AuthTokenRepository defines the interface for auth token data access operations
type AuthTokenRepository interface {
	// SaveAuthToken persists a new token grant
	SaveAuthToken(ctx context.Context, token domain.AuthToken) error

	// FindAuthTokenByID retrieves a token grant or apperrors.ErrNotFound
	FindAuthTokenByID(ctx context.Context, id string) (*domain.AuthToken, error)

	// DeleteAuthToken revokes a token grant. Deleting an unknown id yields apperrors.ErrNotFound.
	DeleteAuthToken(ctx context.Context, id string) error
}
