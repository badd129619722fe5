package dto

import (
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GetExchangeRateQuery binds the query string of a rate lookup.
type GetExchangeRateQuery struct {
	Quote string `form:"quote" binding:"required,currency"`
	Base  string `form:"base" binding:"required,currency"`
}

// SaveExchangeRateRequest defines the structure for a manual rate upsert.
type SaveExchangeRateRequest struct {
	Quote string          `json:"quote" binding:"required,currency"`
	Base  string          `json:"base" binding:"required,currency"`
	Rate  decimal.Decimal `json:"rate" swaggertype:"number"`
}

// ToDomain converts the request into a domain.ExchangeRate.
func (r SaveExchangeRateRequest) ToDomain() domain.ExchangeRate {
	return domain.ExchangeRate{
		Quote: r.Quote,
		Base:  r.Base,
		Rate:  r.Rate.InexactFloat64(),
	}
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	Quote string  `json:"quote"`
	Base  string  `json:"base"`
	Rate  float64 `json:"rate"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		Quote: rate.Quote,
		Base:  rate.Base,
		Rate:  rate.Rate,
	}
}
