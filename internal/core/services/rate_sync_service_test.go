package services_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/core/services"
	"github.com/SscSPs/exchange_rates_app/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Name() string { return "ecb" }

func (m *MockRateProvider) Sync(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func TestRateSync_StoresAndSkipsInvalid(t *testing.T) {
	ctx := context.Background()
	store := memoryRateRepository{}
	m := metrics.New(prometheus.NewRegistry())
	rates := services.NewExchangeRateService(store, services.WithExchangeRateMetrics(m))
	syncer := services.NewRateSyncService(rates, m, nil)

	provider := new(MockRateProvider)
	provider.On("Sync", ctx).Return([]domain.ExchangeRate{
		{Quote: "usd", Base: "EUR", Rate: 0.92},
		{Quote: "XXX", Base: "EUR", Rate: math.Inf(1)},
		{Quote: "JPY", Base: "EUR", Rate: 0.0062},
	}, nil)

	stored, err := syncer.SyncProvider(ctx, provider)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
	assert.Equal(t, 0.92, store[[2]string{"USD", "EUR"}])
	assert.NotContains(t, store, [2]string{"XXX", "EUR"})
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RatesStoredTotal.WithLabelValues("ecb")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderSyncTotal.WithLabelValues("ecb", "success")))
}

func TestRateSync_ProviderFailure(t *testing.T) {
	ctx := context.Background()
	m := metrics.New(prometheus.NewRegistry())
	syncer := services.NewRateSyncService(services.NewExchangeRateService(memoryRateRepository{}), m, nil)

	provider := new(MockRateProvider)
	provider.On("Sync", ctx).Return(nil, apperrors.ErrProvider)

	stored, err := syncer.SyncProvider(ctx, provider)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
	assert.Zero(t, stored)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderSyncTotal.WithLabelValues("ecb", "error")))
}

func TestRateSync_StoreFailureAborts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockExchangeRateRepository)
	repo.On("SaveExchangeRate", ctx, domain.ExchangeRate{Quote: "USD", Base: "EUR", Rate: 0.92}).Return(nil).Once()
	repo.On("SaveExchangeRate", ctx, domain.ExchangeRate{Quote: "JPY", Base: "EUR", Rate: 0.0062}).
		Return(errors.Join(apperrors.ErrStore, errors.New("disk I/O error"))).Once()
	syncer := services.NewRateSyncService(services.NewExchangeRateService(repo), nil, nil)

	provider := new(MockRateProvider)
	provider.On("Sync", ctx).Return([]domain.ExchangeRate{
		{Quote: "USD", Base: "EUR", Rate: 0.92},
		{Quote: "JPY", Base: "EUR", Rate: 0.0062},
		{Quote: "GBP", Base: "EUR", Rate: 1.17},
	}, nil)

	stored, err := syncer.SyncProvider(ctx, provider)
	assert.ErrorIs(t, err, apperrors.ErrStore)
	assert.Equal(t, 1, stored)
	repo.AssertNumberOfCalls(t, "SaveExchangeRate", 2)
}
