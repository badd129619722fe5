package providers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	portsprov "github.com/SscSPs/exchange_rates_app/internal/core/ports/providers"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
)

// Scheduled pairs a provider with its cron schedule.
type Scheduled struct {
	Provider portsprov.RateProvider
	Schedule string
}

// Enabled returns the providers switched on in cfg.
func Enabled(cfg config.ProvidersConfig, client *http.Client) []Scheduled {
	var out []Scheduled
	if cfg.ECB.Enabled {
		out = append(out, Scheduled{Provider: NewECB(cfg.ECB.URL, client), Schedule: cfg.ECB.Schedule})
	}
	if cfg.IEX.Enabled && cfg.IEX.Token != "" {
		out = append(out, Scheduled{
			Provider: NewIEX(cfg.IEX.URL, cfg.IEX.Token, cfg.IEX.Symbols, client),
			Schedule: cfg.IEX.Schedule,
		})
	}
	return out
}

// ByName builds a single provider regardless of its enabled flag, for manual syncs.
func ByName(name string, cfg config.ProvidersConfig, client *http.Client) (portsprov.RateProvider, error) {
	switch strings.ToLower(name) {
	case ECBName:
		return NewECB(cfg.ECB.URL, client), nil
	case IEXName:
		if cfg.IEX.Token == "" {
			return nil, fmt.Errorf("%w: providers.iex.token is not set", apperrors.ErrConfiguration)
		}
		return NewIEX(cfg.IEX.URL, cfg.IEX.Token, cfg.IEX.Symbols, client), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", apperrors.ErrConfiguration, name)
	}
}
