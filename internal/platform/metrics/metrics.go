package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution strategies reported by the rate resolver.
const (
	StrategyIdentity     = "identity"
	StrategyDirect       = "direct"
	StrategyInverse      = "inverse"
	StrategyTriangulated = "triangulated"
	StrategyNotFound     = "not_found"
	StrategyError        = "error"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	RateResolutionsTotal *prometheus.CounterVec
	RatesStoredTotal     *prometheus.CounterVec

	ProviderSyncTotal     *prometheus.CounterVec
	ProviderSyncDuration  *prometheus.HistogramVec
	ProviderLastSyncTime  *prometheus.GaugeVec
	ProviderRatesReceived *prometheus.GaugeVec
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_rate_resolutions_total",
				Help: "Rate lookups by the strategy that answered them",
			},
			[]string{"strategy"},
		),
		RatesStoredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_rates_stored_total",
				Help: "Rates upserted into the store by source",
			},
			[]string{"source"},
		),
		ProviderSyncTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_sync_total",
				Help: "Provider sync runs by outcome",
			},
			[]string{"provider", "status"},
		),
		ProviderSyncDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "provider_sync_duration_seconds",
				Help:    "Duration of provider sync runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		ProviderLastSyncTime: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "provider_last_success_timestamp_seconds",
				Help: "Unix time of the last successful sync",
			},
			[]string{"provider"},
		),
		ProviderRatesReceived: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "provider_rates_received",
				Help: "Number of rates returned by the last sync",
			},
			[]string{"provider"},
		),
	}
}

// RecordResolution counts a rate lookup.
func (m *Metrics) RecordResolution(strategy string) {
	if m == nil {
		return
	}
	m.RateResolutionsTotal.WithLabelValues(strategy).Inc()
}

// RecordStored counts an upserted rate.
func (m *Metrics) RecordStored(source string) {
	if m == nil {
		return
	}
	m.RatesStoredTotal.WithLabelValues(source).Inc()
}

// RecordSync records the outcome of one provider sync.
func (m *Metrics) RecordSync(provider string, received int, took time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ProviderSyncTotal.WithLabelValues(provider, status).Inc()
	m.ProviderSyncDuration.WithLabelValues(provider).Observe(took.Seconds())
	if err == nil {
		m.ProviderLastSyncTime.WithLabelValues(provider).SetToCurrentTime()
		m.ProviderRatesReceived.WithLabelValues(provider).Set(float64(received))
	}
}
