package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuthTokenRepository struct {
	BaseRepository
}

// newPgxAuthTokenRepository creates a new instance of PgxAuthTokenRepository
func newPgxAuthTokenRepository(db *pgxpool.Pool) portsrepo.AuthTokenRepository {
	return &PgxAuthTokenRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const (
	insertAuthTokenQuery   = `INSERT INTO auth_token (id, username, created_at) VALUES ($1, $2, $3)`
	findAuthTokenByIDQuery = `SELECT username, created_at FROM auth_token WHERE id = $1`
	deleteAuthTokenQuery   = `DELETE FROM auth_token WHERE id = $1`
)

func (r *PgxAuthTokenRepository) SaveAuthToken(ctx context.Context, token domain.AuthToken) error {
	if _, err := r.Pool.Exec(ctx, insertAuthTokenQuery, token.ID, token.Username, token.CreatedAt.Unix()); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: auth token %s", apperrors.ErrDuplicate, token.ID)
		}
		return apperrors.Store("save auth token", err)
	}
	return nil
}

func (r *PgxAuthTokenRepository) FindAuthTokenByID(ctx context.Context, id string) (*domain.AuthToken, error) {
	token := domain.AuthToken{ID: id}
	var createdAt int64
	if err := r.Pool.QueryRow(ctx, findAuthTokenByIDQuery, id).Scan(&token.Username, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: auth token %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.Store("find auth token", err)
	}
	token.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &token, nil
}

func (r *PgxAuthTokenRepository) DeleteAuthToken(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, deleteAuthTokenQuery, id)
	if err != nil {
		return apperrors.Store("delete auth token", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: auth token %s", apperrors.ErrNotFound, id)
	}
	return nil
}
