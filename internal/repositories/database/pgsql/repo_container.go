package pgsql

import (
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		AuthTokenRepo:    newPgxAuthTokenRepository(dbPool),
		Health:           &BaseRepository{Pool: dbPool},
	}
}
