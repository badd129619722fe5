package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
)

// ExchangeRateRepository implements portsrepo.ExchangeRateRepositoryFacade.
type ExchangeRateRepository struct {
	BaseRepository
}

func newExchangeRateRepository(db *sql.DB) portsrepo.ExchangeRateRepositoryFacade {
	return &ExchangeRateRepository{BaseRepository: BaseRepository{DB: db}}
}

// SaveExchangeRate inserts or replaces the rate for (quote, base).
func (r *ExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO exchange_rate (quote, base, rate) VALUES (?, ?, ?)
		ON CONFLICT (quote, base) DO UPDATE SET rate = excluded.rate`,
		rate.Quote, rate.Base, rate.Rate,
	)
	if err != nil {
		return apperrors.Store(fmt.Sprintf("save exchange rate %s/%s", rate.Quote, rate.Base), err)
	}
	return nil
}

// FindExchangeRate retrieves the stored row for exactly (quote, base).
func (r *ExchangeRateRepository) FindExchangeRate(ctx context.Context, quote, base string) (*domain.ExchangeRate, error) {
	rate := domain.ExchangeRate{Quote: quote, Base: base}
	err := r.DB.QueryRowContext(ctx,
		`SELECT rate FROM exchange_rate WHERE quote = ? AND base = ?`,
		quote, base,
	).Scan(&rate.Rate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate %s/%s", apperrors.ErrNotFound, quote, base)
		}
		return nil, apperrors.Store(fmt.Sprintf("find exchange rate %s/%s", quote, base), err)
	}
	return &rate, nil
}
