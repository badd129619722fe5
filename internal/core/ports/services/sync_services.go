package services

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/ports/providers"
)

// RateSyncSvc pulls rates from external providers into the store.
type RateSyncSvc interface {
	// SyncProvider fetches from one provider and upserts every valid rate.
	// It returns the number of rates stored.
	SyncProvider(ctx context.Context, provider providers.RateProvider) (int, error)
}
