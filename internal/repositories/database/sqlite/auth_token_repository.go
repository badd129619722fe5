package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
)

// AuthTokenRepository implements portsrepo.AuthTokenRepository.
type AuthTokenRepository struct {
	BaseRepository
}

func newAuthTokenRepository(db *sql.DB) portsrepo.AuthTokenRepository {
	return &AuthTokenRepository{BaseRepository: BaseRepository{DB: db}}
}

// SaveAuthToken inserts a new token grant.
func (r *AuthTokenRepository) SaveAuthToken(ctx context.Context, token domain.AuthToken) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO auth_token (id, username, created_at) VALUES (?, ?, ?)`,
		token.ID, token.Username, token.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: auth token %s", apperrors.ErrDuplicate, token.ID)
		}
		return apperrors.Store("save auth token", err)
	}
	return nil
}

// FindAuthTokenByID retrieves a token grant by its id.
func (r *AuthTokenRepository) FindAuthTokenByID(ctx context.Context, id string) (*domain.AuthToken, error) {
	token := domain.AuthToken{ID: id}
	var createdAt int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT username, created_at FROM auth_token WHERE id = ?`, id,
	).Scan(&token.Username, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: auth token %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.Store("find auth token", err)
	}
	token.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &token, nil
}

// DeleteAuthToken removes a token grant.
func (r *AuthTokenRepository) DeleteAuthToken(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM auth_token WHERE id = ?`, id)
	if err != nil {
		return apperrors.Store("delete auth token", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store("delete auth token", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: auth token %s", apperrors.ErrNotFound, id)
	}
	return nil
}
