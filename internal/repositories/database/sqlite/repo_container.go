package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every SQLite repository onto db.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: newExchangeRateRepository(db),
		UserRepo:         newUserRepository(db),
		AuthTokenRepo:    newAuthTokenRepository(db),
		Health:           &BaseRepository{DB: db},
	}
}
