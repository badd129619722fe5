package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the portsrepo.ExchangeRateRepositoryFacade interface using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveExchangeRate inserts or replaces the rate for (quote, base).
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rate (quote, base, rate) VALUES ($1, $2, $3)
		ON CONFLICT (quote, base) DO UPDATE SET rate = EXCLUDED.rate`,
		rate.Quote, rate.Base, rate.Rate,
	)
	if err != nil {
		return apperrors.Store(fmt.Sprintf("save exchange rate %s/%s", rate.Quote, rate.Base), err)
	}
	return nil
}

// FindExchangeRate retrieves the stored row for exactly (quote, base).
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, quote, base string) (*domain.ExchangeRate, error) {
	rate := domain.ExchangeRate{Quote: quote, Base: base}
	err := r.Pool.QueryRow(ctx,
		`SELECT rate FROM exchange_rate WHERE quote = $1 AND base = $2`,
		quote, base,
	).Scan(&rate.Rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate %s/%s", apperrors.ErrNotFound, quote, base)
		}
		return nil, apperrors.Store(fmt.Sprintf("find exchange rate %s/%s", quote, base), err)
	}
	return &rate, nil
}
