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

// UserRepository implements portsrepo.UserRepositoryFacade.
type UserRepository struct {
	BaseRepository
}

func newUserRepository(db *sql.DB) portsrepo.UserRepositoryFacade {
	return &UserRepository{BaseRepository: BaseRepository{DB: db}}
}

// SaveUser inserts a new user.
func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		user.Username, user.PasswordHash, user.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %q", apperrors.ErrDuplicate, user.Username)
		}
		return apperrors.Store("save user", err)
	}
	return nil
}

// FindUserByUsername retrieves a user by username.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := domain.User{Username: username}
	var createdAt int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT password_hash, created_at FROM users WHERE username = ?`, username,
	).Scan(&user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, username)
		}
		return nil, apperrors.Store("find user", err)
	}
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &user, nil
}
