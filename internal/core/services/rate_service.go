package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/apperrors"
	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
	portsprov "github.com/CHSevero/currency-exchange-api/internal/core/ports/providers"
	portsrepo "github.com/CHSevero/currency-exchange-api/internal/core/ports/repositories"
	"github.com/CHSevero/currency-exchange-api/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

const (
	// crossRatePrecision is the number of decimal places carried through
	// rate-to-rate division before the final rounding.
	crossRatePrecision = 15

	// rateScale is the precision of rates returned by GetExchangeRate.
	rateScale = 9
)

// RateServiceConfig carries the static configuration of the rate engine.
type RateServiceConfig struct {
	BaseCurrency        string
	CacheTTL            time.Duration
	SupportedCurrencies []string
}

// RateService provides exchange-rate lookups backed by a TTL cache, a live
// provider and a persisted snapshot store, consulted in that order.
type RateService struct {
	provider     portsprov.RateProvider
	snapshotRepo portsrepo.RateSnapshotRepositoryFacade
	cache        *RateCache
	baseCurrency string
	cacheTTL     time.Duration
	supported    map[string]struct{}
	metrics      *metrics.ConversionMetrics
	logger       *slog.Logger
	now          func() time.Time
}

// RateServiceOption configures optional RateService dependencies.
type RateServiceOption func(*RateService)

// WithRateMetrics wires the prometheus metric bundle into the service.
func WithRateMetrics(m *metrics.ConversionMetrics) RateServiceOption {
	return func(s *RateService) {
		s.metrics = m
	}
}

// WithRateLogger overrides the default logger.
func WithRateLogger(logger *slog.Logger) RateServiceOption {
	return func(s *RateService) {
		s.logger = logger
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) RateServiceOption {
	return func(s *RateService) {
		s.now = now
	}
}

// NewRateService creates a new RateService around an injected cache.
func NewRateService(
	cache *RateCache,
	provider portsprov.RateProvider,
	snapshotRepo portsrepo.RateSnapshotRepositoryFacade,
	cfg RateServiceConfig,
	opts ...RateServiceOption,
) *RateService {
	supported := make(map[string]struct{}, len(cfg.SupportedCurrencies))
	for _, code := range cfg.SupportedCurrencies {
		supported[code] = struct{}{}
	}

	s := &RateService{
		provider:     provider,
		snapshotRepo: snapshotRepo,
		cache:        cache,
		baseCurrency: cfg.BaseCurrency,
		cacheTTL:     cfg.CacheTTL,
		supported:    supported,
		logger:       slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetExchangeRate returns the rate from fromCurrency to toCurrency at 9
// decimal places. Both codes must belong to the supported set; identical
// currencies yield exactly 1 without any fetch or store access.
func (s *RateService) GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	for _, code := range []string{fromCurrency, toCurrency} {
		if _, ok := s.supported[code]; !ok {
			return decimal.Decimal{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidCurrency, code)
		}
	}

	if fromCurrency == toCurrency {
		return decimal.NewFromInt(1), nil
	}

	rates, err := s.getRates(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	var rate decimal.Decimal
	switch {
	case fromCurrency == s.baseCurrency:
		toRate, err := rateFor(rates, toCurrency)
		if err != nil {
			return decimal.Decimal{}, err
		}
		rate = toRate
	case toCurrency == s.baseCurrency:
		fromRate, err := rateFor(rates, fromCurrency)
		if err != nil {
			return decimal.Decimal{}, err
		}
		rate = decimal.NewFromInt(1).DivRound(fromRate, crossRatePrecision)
	default:
		toRate, err := rateFor(rates, toCurrency)
		if err != nil {
			return decimal.Decimal{}, err
		}
		fromRate, err := rateFor(rates, fromCurrency)
		if err != nil {
			return decimal.Decimal{}, err
		}
		rate = toRate.DivRound(fromRate, crossRatePrecision)
	}

	return rate.Round(rateScale), nil
}

// rateFor looks up a currency in the table. A supported currency missing from
// the provider's table is a degraded-provider condition, not a user error.
func rateFor(rates domain.RateTable, code string) (decimal.Decimal, error) {
	rate, ok := rates[code]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: rate for %s missing from provider table", apperrors.ErrExternalServiceUnavailable, code)
	}
	return rate, nil
}

// getRates resolves the full rate table for the base currency through the
// fallback chain: fresh cache, live fetch, stale cache, snapshot store.
func (s *RateService) getRates(ctx context.Context) (domain.RateTable, error) {
	now := s.now()

	if rates, ok := s.cache.Get(s.baseCurrency, now); ok {
		s.metrics.RecordCacheLookup(metrics.CacheFresh)
		return rates, nil
	}
	s.metrics.RecordCacheLookup(metrics.CacheMiss)

	s.logger.InfoContext(ctx, "Fetching exchange rates from provider", slog.String("base_currency", s.baseCurrency))
	fetchStart := now
	rates, fetchErr := s.provider.FetchRates(ctx, s.baseCurrency)
	if fetchErr == nil {
		s.metrics.RecordProviderRequest(metrics.ProviderSuccess, time.Since(fetchStart).Seconds())
		s.cache.Put(s.baseCurrency, rates, now.Add(s.cacheTTL))
		s.saveSnapshot(ctx, rates)
		return rates, nil
	}
	s.metrics.RecordProviderRequest(metrics.ProviderFailure, time.Since(fetchStart).Seconds())
	s.logger.ErrorContext(ctx, "Provider fetch failed", slog.String("error", fetchErr.Error()))

	if rates, ok := s.cache.GetStale(s.baseCurrency); ok {
		s.logger.WarnContext(ctx, "Serving expired cached exchange rates")
		s.metrics.RecordCacheLookup(metrics.CacheStale)
		return rates, nil
	}

	if rates, ok := s.loadSnapshot(ctx); ok {
		s.logger.WarnContext(ctx, "Serving exchange rates from snapshot store")
		s.metrics.RecordSnapshotFallback()
		return rates, nil
	}

	return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalServiceUnavailable, fetchErr)
}

// saveSnapshot persists the freshly fetched table as a fallback snapshot.
// Best-effort: a write failure must never invalidate the fetched result.
func (s *RateService) saveSnapshot(ctx context.Context, rates domain.RateTable) {
	snapshot := domain.NewRateSnapshot(s.baseCurrency, rates, s.now().UTC())
	if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save rate snapshot", slog.String("error", err.Error()))
		s.metrics.RecordSnapshotSaveFailure()
	}
}

// loadSnapshot reads the latest persisted snapshot for the base currency.
// Store-read failures are logged, never raised; they just exhaust this tier.
func (s *RateService) loadSnapshot(ctx context.Context) (domain.RateTable, bool) {
	snapshot, err := s.snapshotRepo.FindLatestSnapshot(ctx, s.baseCurrency)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.ErrorContext(ctx, "Failed to load rate snapshot", slog.String("error", err.Error()))
		}
		return nil, false
	}

	rates, err := snapshot.Table()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to deserialize rate snapshot",
			slog.String("snapshot_id", snapshot.SnapshotID),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return rates, true
}
