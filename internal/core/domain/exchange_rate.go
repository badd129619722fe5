package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
)

// ExchangeRate states that one unit of Quote is worth Rate units of Base.
// At most one row exists per ordered (Quote, Base) pair; the reverse pair is a separate row.
type ExchangeRate struct {
	Quote string  `json:"quote"`
	Base  string  `json:"base"`
	Rate  float64 `json:"rate"`
}

// NormalizeCurrencyCode trims and upper-cases a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Normalize returns a copy with normalized currency codes.
func (r ExchangeRate) Normalize() ExchangeRate {
	r.Quote = NormalizeCurrencyCode(r.Quote)
	r.Base = NormalizeCurrencyCode(r.Base)
	return r
}

// Validate checks the row can be stored: both codes present and a positive finite rate.
func (r ExchangeRate) Validate() error {
	if r.Quote == "" || r.Base == "" {
		return fmt.Errorf("%w: quote and base currency codes are required", apperrors.ErrValidation)
	}
	if !IsUsableRate(r.Rate) {
		return fmt.Errorf("%w: rate for %s/%s must be positive and finite, got %v", apperrors.ErrValidation, r.Quote, r.Base, r.Rate)
	}
	return nil
}

// IsUsableRate reports whether v can be used as a divisor or dividend in rate arithmetic.
func IsUsableRate(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
