package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/SscSPs/exchange_rates_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.ExchangeRate = NewExchangeRateService(
		repos.ExchangeRateRepo,
		WithReferenceCurrency(cfg.ReferenceCurrency),
		WithExchangeRateMetrics(m),
	)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, repos.AuthTokenRepo)
	container.RateSync = NewRateSyncService(container.ExchangeRate, m, logger)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.TokenSvcFacade        = (*tokenService)(nil)
	_ portssvc.RateSyncSvc           = (*rateSyncService)(nil)
)
