package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IEXName is the provider name used in config, metrics and the CLI.
const IEXName = "iex"

// IEX reads crypto quotes priced in EUR from IEX Cloud.
type IEX struct {
	baseURL string
	token   string
	symbols []string
	fetch   fetcher
}

// NewIEX creates the provider. With no symbols it quotes BTC.
func NewIEX(baseURL, token string, symbols []string, client *http.Client) *IEX {
	var normalized []string
	for _, s := range symbols {
		if s = domain.NormalizeCurrencyCode(s); s != "" {
			normalized = append(normalized, s)
		}
	}
	if len(normalized) == 0 {
		normalized = []string{"BTC"}
	}
	return &IEX{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		symbols: normalized,
		fetch:   newFetcher(client),
	}
}

func (p *IEX) Name() string { return IEXName }

// iexQuote accepts latestPrice as either a JSON string or number.
type iexQuote struct {
	LatestPrice json.RawMessage `json:"latestPrice"`
}

func (p *IEX) Sync(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates := make([]domain.ExchangeRate, 0, len(p.symbols))
	for _, symbol := range p.symbols {
		u := fmt.Sprintf("%s/stable/crypto/%sEUR/quote?token=%s", p.baseURL, url.PathEscape(symbol), url.QueryEscape(p.token))
		body, err := p.fetch.get(ctx, u)
		if err != nil {
			return nil, err
		}
		price, err := parseIEXQuote(body)
		if err != nil {
			return nil, fmt.Errorf("%w: iex: %s: %w", apperrors.ErrProvider, symbol, err)
		}
		rates = append(rates, domain.ExchangeRate{Quote: symbol, Base: "EUR", Rate: price})
	}
	return rates, nil
}

func parseIEXQuote(body []byte) (float64, error) {
	var q iexQuote
	if err := json.Unmarshal(body, &q); err != nil {
		return 0, err
	}
	raw := strings.Trim(strings.TrimSpace(string(q.LatestPrice)), `"`)
	if raw == "" || raw == "null" {
		return 0, fmt.Errorf("latestPrice missing")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("latestPrice %q: %w", raw, err)
	}
	return d.InexactFloat64(), nil
}
