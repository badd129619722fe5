package providers

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// RateProvider is an external source of exchange rates.
type RateProvider interface {
	// Name identifies the provider in logs, metrics and CLI flags.
	Name() string

	// Sync fetches the provider's current rates.
	Sync(ctx context.Context) ([]domain.ExchangeRate, error)
}
