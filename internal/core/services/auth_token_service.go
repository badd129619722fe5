package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/SscSPs/exchange_rates_app/internal/utils"
	"github.com/google/uuid"
)

// tokenService issues JWTs backed by a persisted grant so they can be revoked.
type tokenService struct {
	cfg       *config.Config
	tokenRepo portsrepo.AuthTokenRepository
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, tokenRepo portsrepo.AuthTokenRepository) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:       cfg,
		tokenRepo: tokenRepo,
	}
}

func (s *tokenService) IssueToken(ctx context.Context, user *domain.User) (string, *domain.AuthToken, error) {
	grant := domain.AuthToken{
		ID:        uuid.NewString(),
		Username:  user.Username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.tokenRepo.SaveAuthToken(ctx, grant); err != nil {
		return "", nil, fmt.Errorf("failed to save auth token: %w", err)
	}

	signed, err := utils.GenerateJWT(user.Username, grant.ID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign auth token: %w", err)
	}
	return signed, &grant, nil
}

func (s *tokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.AuthToken, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("%w: token is missing required claims", apperrors.ErrUnauthorized)
	}

	grant, err := s.tokenRepo.FindAuthTokenByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: token has been revoked", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up auth token: %w", err)
	}
	if grant.Username != claims.Subject {
		return nil, fmt.Errorf("%w: token subject mismatch", apperrors.ErrUnauthorized)
	}
	return grant, nil
}

func (s *tokenService) RevokeToken(ctx context.Context, tokenID string) error {
	if err := s.tokenRepo.DeleteAuthToken(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}
	return nil
}
