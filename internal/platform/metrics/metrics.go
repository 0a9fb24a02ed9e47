package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup outcomes recorded by RecordCacheLookup.
const (
	CacheFresh = "fresh"
	CacheStale = "stale"
	CacheMiss  = "miss"
)

// Provider request outcomes recorded by RecordProviderRequest.
const (
	ProviderSuccess = "success"
	ProviderFailure = "failure"
)

// ConversionMetrics bundles the prometheus metrics for the conversion and
// rate-retrieval pipeline. All Record helpers are nil-receiver safe so
// services can run without metrics wired (tests, tooling).
type ConversionMetrics struct {
	ConversionsTotal          *prometheus.CounterVec
	ConversionErrorsTotal     *prometheus.CounterVec
	RateCacheLookupsTotal     *prometheus.CounterVec
	ProviderRequestsTotal     *prometheus.CounterVec
	ProviderRequestDuration   prometheus.Histogram
	SnapshotFallbackTotal     prometheus.Counter
	SnapshotSaveFailuresTotal prometheus.Counter
}

// NewConversionMetrics registers the metric set against the given registerer.
// Pass prometheus.DefaultRegisterer in production and a private
// prometheus.NewRegistry() in tests.
func NewConversionMetrics(reg prometheus.Registerer) *ConversionMetrics {
	factory := promauto.With(reg)

	return &ConversionMetrics{
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Total number of successful currency conversions",
			},
			[]string{"source_currency", "target_currency"},
		),
		ConversionErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversion_errors_total",
				Help: "Total number of failed conversions by failure kind",
			},
			[]string{"reason"},
		),
		RateCacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Rate cache lookups by outcome (fresh, stale, miss)",
			},
			[]string{"outcome"},
		),
		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_requests_total",
				Help: "Rate provider fetches by outcome",
			},
			[]string{"outcome"},
		),
		ProviderRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "provider_request_duration_seconds",
				Help:    "Rate provider fetch latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
		SnapshotFallbackTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "snapshot_fallback_total",
				Help: "Times the persisted snapshot store served rates after a fetch failure",
			},
		),
		SnapshotSaveFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "snapshot_save_failures_total",
				Help: "Best-effort snapshot writes that failed and were swallowed",
			},
		),
	}
}

// RecordConversion records a successful conversion.
func (m *ConversionMetrics) RecordConversion(sourceCurrency, targetCurrency string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(sourceCurrency, targetCurrency).Inc()
}

// RecordConversionError records a failed conversion by failure kind.
func (m *ConversionMetrics) RecordConversionError(reason string) {
	if m == nil {
		return
	}
	m.ConversionErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordCacheLookup records a rate cache lookup outcome.
func (m *ConversionMetrics) RecordCacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.RateCacheLookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordProviderRequest records a provider fetch and its latency.
func (m *ConversionMetrics) RecordProviderRequest(outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.ProviderRequestsTotal.WithLabelValues(outcome).Inc()
	m.ProviderRequestDuration.Observe(durationSeconds)
}

// RecordSnapshotFallback records the snapshot store serving rates.
func (m *ConversionMetrics) RecordSnapshotFallback() {
	if m == nil {
		return
	}
	m.SnapshotFallbackTotal.Inc()
}

// RecordSnapshotSaveFailure records a swallowed snapshot write failure.
func (m *ConversionMetrics) RecordSnapshotSaveFailure() {
	if m == nil {
		return
	}
	m.SnapshotSaveFailuresTotal.Inc()
}
