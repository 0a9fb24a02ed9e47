package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/apperrors"
	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
	"github.com/CHSevero/currency-exchange-api/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRateProvider is a mock type for the RateProvider interface
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, baseCurrency string) (domain.RateTable, error) {
	args := m.Called(ctx, baseCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RateTable), args.Error(1)
}

// MockRateSnapshotRepository is a mock type for the RateSnapshotRepositoryFacade interface
type MockRateSnapshotRepository struct {
	mock.Mock
}

func (m *MockRateSnapshotRepository) FindLatestSnapshot(ctx context.Context, baseCurrency string) (*domain.RateSnapshot, error) {
	args := m.Called(ctx, baseCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockRateSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// --- Test Suite Setup ---

type RateServiceTestSuite struct {
	suite.Suite
	mockProvider     *MockRateProvider
	mockSnapshotRepo *MockRateSnapshotRepository
	cache            *services.RateCache
	service          *services.RateService
	now              time.Time
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockRateProvider)
	suite.mockSnapshotRepo = new(MockRateSnapshotRepository)
	suite.cache = services.NewRateCache()
	suite.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewRateService(
		suite.cache,
		suite.mockProvider,
		suite.mockSnapshotRepo,
		services.RateServiceConfig{
			BaseCurrency:        "EUR",
			CacheTTL:            time.Hour,
			SupportedCurrencies: []string{"EUR", "USD", "GBP", "JPY"},
		},
		services.WithClock(func() time.Time { return suite.now }),
	)
}

// eurRates is a provider table for base EUR with round-number entries so the
// expected cross rates are easy to verify by hand.
func eurRates() domain.RateTable {
	return domain.RateTable{
		"EUR": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("1.18"),
		"JPY": decimal.RequireFromString("129.55"),
	}
}

// expectSuccessfulFetch wires a single provider fetch plus the best-effort
// snapshot write that follows it.
func (suite *RateServiceTestSuite) expectSuccessfulFetch(ctx context.Context, rates domain.RateTable) {
	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(rates, nil).Once()
	suite.mockSnapshotRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()
}

// --- Test Cases ---

func (suite *RateServiceTestSuite) TestGetExchangeRate_SameCurrency() {
	ctx := context.Background()

	rate, err := suite.service.GetExchangeRate(ctx, "USD", "USD")

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1).Equal(rate), "got %s", rate)

	// Identity rates never touch the provider or the snapshot store.
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates", mock.Anything, mock.Anything)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "FindLatestSnapshot", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_UnsupportedCurrency() {
	ctx := context.Background()

	_, err := suite.service.GetExchangeRate(ctx, "USD", "XXX")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidCurrency)
	suite.Contains(err.Error(), "XXX")

	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_FromBase() {
	ctx := context.Background()
	suite.expectSuccessfulFetch(ctx, eurRates())

	rate, err := suite.service.GetExchangeRate(ctx, "EUR", "USD")

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("1.18").Equal(rate), "got %s", rate)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_ToBase() {
	ctx := context.Background()
	suite.expectSuccessfulFetch(ctx, eurRates())

	rate, err := suite.service.GetExchangeRate(ctx, "USD", "EUR")

	// 1 / 1.18 rounded to 9 decimal places.
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("0.847457627").Equal(rate), "got %s", rate)
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_CrossRate() {
	ctx := context.Background()
	suite.expectSuccessfulFetch(ctx, eurRates())

	rate, err := suite.service.GetExchangeRate(ctx, "USD", "JPY")

	// 129.55 / 1.18 rounded to 9 decimal places.
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("109.788135593").Equal(rate), "got %s", rate)
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_CachedWithinTTL() {
	ctx := context.Background()
	suite.expectSuccessfulFetch(ctx, eurRates())

	_, err := suite.service.GetExchangeRate(ctx, "EUR", "USD")
	suite.Require().NoError(err)

	// Second lookup inside the TTL window must not hit the provider again.
	suite.now = suite.now.Add(30 * time.Minute)
	rate, err := suite.service.GetExchangeRate(ctx, "USD", "JPY")
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("109.788135593").Equal(rate), "got %s", rate)

	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_ExpiredCacheRefetches() {
	ctx := context.Background()
	suite.expectSuccessfulFetch(ctx, eurRates())

	_, err := suite.service.GetExchangeRate(ctx, "EUR", "USD")
	suite.Require().NoError(err)

	// Past the TTL the cached table no longer counts as fresh.
	suite.now = suite.now.Add(2 * time.Hour)
	suite.expectSuccessfulFetch(ctx, domain.RateTable{
		"EUR": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("1.20"),
	})

	rate, err := suite.service.GetExchangeRate(ctx, "EUR", "USD")
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("1.2").Equal(rate), "got %s", rate)

	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchRates", 2)
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_StaleCacheFallback() {
	ctx := context.Background()
	suite.expectSuccessfulFetch(ctx, eurRates())

	_, err := suite.service.GetExchangeRate(ctx, "EUR", "USD")
	suite.Require().NoError(err)

	// Expired entry plus a failing provider serves the stale table.
	suite.now = suite.now.Add(2 * time.Hour)
	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(nil, assert.AnError).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "EUR", "USD")
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("1.18").Equal(rate), "got %s", rate)

	// The stale tier resolves before the snapshot store is consulted.
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "FindLatestSnapshot", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_SnapshotFallback() {
	ctx := context.Background()
	snapshot := domain.NewRateSnapshot("EUR", eurRates(), suite.now.Add(-24*time.Hour))

	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(nil, assert.AnError).Once()
	suite.mockSnapshotRepo.On("FindLatestSnapshot", ctx, "EUR").Return(&snapshot, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USD", "JPY")

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("109.788135593").Equal(rate), "got %s", rate)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_AllTiersFail() {
	ctx := context.Background()

	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(nil, assert.AnError).Once()
	suite.mockSnapshotRepo.On("FindLatestSnapshot", ctx, "EUR").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetExchangeRate(ctx, "EUR", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExternalServiceUnavailable)
	// The fetch failure is preserved in the message for operators.
	suite.Contains(err.Error(), assert.AnError.Error())
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_SnapshotSaveFailureIgnored() {
	ctx := context.Background()

	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(eurRates(), nil).Once()
	suite.mockSnapshotRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(assert.AnError).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "EUR", "USD")

	// A snapshot write failure never invalidates the fetched result.
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("1.18").Equal(rate), "got %s", rate)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetExchangeRate_CurrencyMissingFromTable() {
	ctx := context.Background()
	suite.expectSuccessfulFetch(ctx, domain.RateTable{
		"EUR": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("1.18"),
	})

	// GBP is supported but the provider table has no entry for it.
	_, err := suite.service.GetExchangeRate(ctx, "USD", "GBP")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExternalServiceUnavailable)
	suite.NotErrorIs(err, apperrors.ErrInvalidCurrency)
}

// --- Run Test Suite ---

func TestRateService(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
