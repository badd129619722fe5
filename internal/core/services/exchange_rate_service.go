package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/platform/metrics"
)

// DefaultReferenceCurrency is the triangulation pivot used when none is configured.
const DefaultReferenceCurrency = "EUR"

// exchangeRateService resolves and stores exchange rates.
type exchangeRateService struct {
	rateRepo          portsrepo.ExchangeRateRepositoryFacade
	referenceCurrency string
	metrics           *metrics.Metrics
}

// ExchangeRateOption configures the exchange rate service
type ExchangeRateOption func(*exchangeRateService)

// WithReferenceCurrency sets the currency used to triangulate pairs with no direct or inverse row.
func WithReferenceCurrency(code string) ExchangeRateOption {
	return func(s *exchangeRateService) {
		if code = domain.NormalizeCurrencyCode(code); code != "" {
			s.referenceCurrency = code
		}
	}
}

// WithExchangeRateMetrics records resolution strategies and stored rates.
func WithExchangeRateMetrics(m *metrics.Metrics) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.metrics = m
	}
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, opts ...ExchangeRateOption) portssvc.ExchangeRateSvcFacade {
	s := &exchangeRateService{
		rateRepo:          rateRepo,
		referenceCurrency: DefaultReferenceCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetExchangeRate resolves quote/base in strict order: identity, direct row,
// inverse row, then both legs against the reference currency. The first
// strategy that finds data wins, even if another path would give a different
// number.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, quote, base string) (*domain.ExchangeRate, error) {
	quote = domain.NormalizeCurrencyCode(quote)
	base = domain.NormalizeCurrencyCode(base)
	if quote == "" || base == "" {
		return nil, fmt.Errorf("%w: quote and base currency codes are required", apperrors.ErrValidation)
	}

	rate, strategy, err := s.resolve(ctx, quote, base)
	switch {
	case err == nil:
		s.metrics.RecordResolution(strategy)
	case errors.Is(err, apperrors.ErrNotFound):
		s.metrics.RecordResolution(metrics.StrategyNotFound)
	default:
		s.metrics.RecordResolution(metrics.StrategyError)
	}
	return rate, err
}

func (s *exchangeRateService) resolve(ctx context.Context, quote, base string) (*domain.ExchangeRate, string, error) {
	if quote == base {
		return &domain.ExchangeRate{Quote: quote, Base: base, Rate: 1.0}, metrics.StrategyIdentity, nil
	}

	direct, found, err := s.lookup(ctx, quote, base)
	if err != nil {
		return nil, "", err
	}
	if found {
		return direct, metrics.StrategyDirect, nil
	}

	inverse, found, err := s.lookup(ctx, base, quote)
	if err != nil {
		return nil, "", err
	}
	if found {
		if !domain.IsUsableRate(inverse.Rate) {
			return nil, "", fmt.Errorf("%w: cannot invert stored rate %s/%s = %v", apperrors.ErrData, base, quote, inverse.Rate)
		}
		return derived(quote, base, 1.0/inverse.Rate, metrics.StrategyInverse)
	}

	quoteLeg, found, err := s.lookup(ctx, quote, s.referenceCurrency)
	if err != nil || !found {
		return nil, "", notFoundOr(err, quote, base)
	}
	baseLeg, found, err := s.lookup(ctx, base, s.referenceCurrency)
	if err != nil || !found {
		return nil, "", notFoundOr(err, quote, base)
	}
	for _, leg := range []*domain.ExchangeRate{quoteLeg, baseLeg} {
		if !domain.IsUsableRate(leg.Rate) {
			return nil, "", fmt.Errorf("%w: cannot triangulate through stored rate %s/%s = %v", apperrors.ErrData, leg.Quote, leg.Base, leg.Rate)
		}
	}
	return derived(quote, base, quoteLeg.Rate/baseLeg.Rate, metrics.StrategyTriangulated)
}

// lookup reports a missing row as found=false and any other failure as an error.
func (s *exchangeRateService) lookup(ctx context.Context, quote, base string) (*domain.ExchangeRate, bool, error) {
	rate, err := s.rateRepo.FindExchangeRate(ctx, quote, base)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, nil
		}
		if !errors.Is(err, apperrors.ErrStore) {
			err = fmt.Errorf("%w: %w", apperrors.ErrStore, err)
		}
		return nil, false, fmt.Errorf("failed to look up rate %s/%s: %w", quote, base, err)
	}
	return rate, true, nil
}

func derived(quote, base string, value float64, strategy string) (*domain.ExchangeRate, string, error) {
	if !domain.IsUsableRate(value) {
		return nil, "", fmt.Errorf("%w: derived rate %s/%s is not finite", apperrors.ErrData, quote, base)
	}
	return &domain.ExchangeRate{Quote: quote, Base: base, Rate: value}, strategy, nil
}

func notFoundOr(err error, quote, base string) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: no exchange rate for %s/%s", apperrors.ErrNotFound, quote, base)
}

// SaveExchangeRate validates and upserts a rate.
func (s *exchangeRateService) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	rate = rate.Normalize()
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate %s/%s: %w", rate.Quote, rate.Base, err)
	}
	return &rate, nil
}
