package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/ports/providers"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/platform/metrics"
)

// rateSyncService copies provider rates into the store through the exchange rate service.
type rateSyncService struct {
	rates   portssvc.ExchangeRateWriterSvc
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewRateSyncService creates a new rate sync service.
func NewRateSyncService(rates portssvc.ExchangeRateWriterSvc, m *metrics.Metrics, logger *slog.Logger) portssvc.RateSyncSvc {
	if logger == nil {
		logger = slog.Default()
	}
	return &rateSyncService{rates: rates, metrics: m, logger: logger}
}

// SyncProvider fetches from the provider and upserts each rate. Rates that fail
// validation are skipped; a store failure aborts the sync.
func (s *rateSyncService) SyncProvider(ctx context.Context, provider providers.RateProvider) (int, error) {
	start := time.Now()
	logger := s.logger.With(slog.String("provider", provider.Name()))

	rates, err := provider.Sync(ctx)
	if err != nil {
		s.metrics.RecordSync(provider.Name(), 0, time.Since(start), err)
		return 0, fmt.Errorf("provider %s: %w", provider.Name(), err)
	}

	stored := 0
	for _, rate := range rates {
		if _, err := s.rates.SaveExchangeRate(ctx, rate); err != nil {
			if errors.Is(err, apperrors.ErrValidation) {
				logger.Warn("Skipping invalid rate from provider",
					slog.String("quote", rate.Quote),
					slog.String("base", rate.Base),
					slog.Float64("rate", rate.Rate),
					slog.String("error", err.Error()),
				)
				continue
			}
			s.metrics.RecordSync(provider.Name(), len(rates), time.Since(start), err)
			return stored, fmt.Errorf("provider %s: storing %s/%s: %w", provider.Name(), rate.Quote, rate.Base, err)
		}
		s.metrics.RecordStored(provider.Name())
		stored++
	}

	s.metrics.RecordSync(provider.Name(), len(rates), time.Since(start), nil)
	logger.Info("Provider sync complete",
		slog.Int("received", len(rates)),
		slog.Int("count", stored),
		slog.Duration("duration", time.Since(start)),
	)
	return stored, nil
}
