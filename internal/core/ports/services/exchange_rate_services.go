package services

import (
	"context"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate resolves the rate for an ordered currency pair using direct,
	// inverse, then reference-currency lookups. No path yields apperrors.ErrNotFound.
	GetExchangeRate(ctx context.Context, quote, base string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// SaveExchangeRate validates and upserts a rate, returning the stored row.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
