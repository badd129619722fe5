package domain_test

import (
	"math"
	"testing"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestExchangeRate_Normalize(t *testing.T) {
	got := domain.ExchangeRate{Quote: " usd", Base: "eur ", Rate: 1.1}.Normalize()
	assert.Equal(t, domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: 1.1}, got)
}

func TestExchangeRate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rate    domain.ExchangeRate
		wantErr bool
	}{
		{name: "valid", rate: domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: 0.92}},
		{name: "missing quote", rate: domain.ExchangeRate{Base: "EUR", Rate: 1}, wantErr: true},
		{name: "missing base", rate: domain.ExchangeRate{Quote: "USD", Rate: 1}, wantErr: true},
		{name: "zero rate", rate: domain.ExchangeRate{Quote: "USD", Base: "EUR"}, wantErr: true},
		{name: "negative rate", rate: domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: -2}, wantErr: true},
		{name: "infinite rate", rate: domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: math.Inf(1)}, wantErr: true},
		{name: "NaN rate", rate: domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: math.NaN()}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rate.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
