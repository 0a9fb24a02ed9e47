package services

import (
	portsprov "github.com/CHSevero/currency-exchange-api/internal/core/ports/providers"
	portsrepo "github.com/CHSevero/currency-exchange-api/internal/core/ports/repositories"
	portssvc "github.com/CHSevero/currency-exchange-api/internal/core/ports/services"
	"github.com/CHSevero/currency-exchange-api/internal/platform/config"
	"github.com/CHSevero/currency-exchange-api/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	provider portsprov.RateProvider,
	m *metrics.ConversionMetrics,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// One cache per process; its lifecycle is owned here, not by the service.
	cache := NewRateCache()

	container.Rate = NewRateService(
		cache,
		provider,
		repos.RateSnapshotRepo,
		RateServiceConfig{
			BaseCurrency:        cfg.BaseCurrency,
			CacheTTL:            cfg.CacheTTL,
			SupportedCurrencies: cfg.SupportedCurrencies,
		},
		WithRateMetrics(m),
	)
	container.Conversion = NewConversionService(
		container.Rate,
		repos.TransactionRepo,
		WithConversionMetrics(m),
	)
	container.Transaction = NewTransactionService(repos.TransactionRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RateSvcFacade        = (*RateService)(nil)
	_ portssvc.ConversionSvcFacade  = (*ConversionService)(nil)
	_ portssvc.TransactionSvcFacade = (*TransactionService)(nil)
)
