package providers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ECBName is the provider name used in config, metrics and the CLI.
const ECBName = "ecb"

// ECB reads the European Central Bank daily reference rates. The feed quotes
// every currency against EUR, so each value v becomes {code, EUR, 1/v}.
type ECB struct {
	url   string
	fetch fetcher
}

// NewECB creates the provider. A nil client uses a default with a timeout.
func NewECB(url string, client *http.Client) *ECB {
	return &ECB{url: url, fetch: newFetcher(client)}
}

func (p *ECB) Name() string { return ECBName }

func (p *ECB) Sync(ctx context.Context) ([]domain.ExchangeRate, error) {
	body, err := p.fetch.get(ctx, p.url)
	if err != nil {
		return nil, err
	}
	return parseECBArchive(body)
}

func parseECBArchive(body []byte) ([]domain.ExchangeRate, error) {
	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: ecb: reading archive: %w", apperrors.ErrProvider, err)
	}
	if len(archive.File) == 0 {
		return nil, fmt.Errorf("%w: ecb: archive is empty", apperrors.ErrProvider)
	}
	f, err := archive.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("%w: ecb: opening %s: %w", apperrors.ErrProvider, archive.File[0].Name, err)
	}
	defer f.Close()
	return parseECBCSV(f)
}

// parseECBCSV reads the two-line "Date, USD, JPY, ..." file. Lines end in a
// trailing ", " that produces an empty last column.
func parseECBCSV(r io.Reader) ([]domain.ExchangeRate, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: ecb: reading header: %w", apperrors.ErrProvider, err)
	}
	values, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: ecb: reading values: %w", apperrors.ErrProvider, err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "Date") {
		return nil, fmt.Errorf("%w: ecb: unexpected header %q", apperrors.ErrProvider, header)
	}

	one := decimal.NewFromInt(1)
	var rates []domain.ExchangeRate
	for i := 1; i < len(header); i++ {
		code := domain.NormalizeCurrencyCode(header[i])
		if code == "" || i >= len(values) {
			continue
		}
		raw := strings.TrimSpace(values[i])
		if raw == "" || strings.EqualFold(raw, "N/A") {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: ecb: value %q for %s: %w", apperrors.ErrProvider, raw, code, err)
		}
		if !v.IsPositive() {
			return nil, fmt.Errorf("%w: ecb: non-positive value %s for %s", apperrors.ErrProvider, raw, code)
		}
		rates = append(rates, domain.ExchangeRate{
			Quote: code,
			Base:  "EUR",
			Rate:  one.DivRound(v, 16).InexactFloat64(),
		})
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: ecb: no rates in file", apperrors.ErrProvider)
	}
	return rates, nil
}
