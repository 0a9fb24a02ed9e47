package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/apperrors"
	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
	portsrepo "github.com/CHSevero/currency-exchange-api/internal/core/ports/repositories"
	portssvc "github.com/CHSevero/currency-exchange-api/internal/core/ports/services"
	"github.com/CHSevero/currency-exchange-api/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// displayScale is the precision of persisted/displayed rates and amounts.
// Deliberately coarser than the 9-dp rate returned by the rate service; the
// two roundings are an intentional dual-precision policy.
const displayScale = 2

// ConversionService provides business logic for currency conversions.
type ConversionService struct {
	rateService portssvc.RateSvcFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	metrics     *metrics.ConversionMetrics
	now         func() time.Time
}

// ConversionServiceOption configures optional ConversionService dependencies.
type ConversionServiceOption func(*ConversionService)

// WithConversionMetrics wires the prometheus metric bundle into the service.
func WithConversionMetrics(m *metrics.ConversionMetrics) ConversionServiceOption {
	return func(s *ConversionService) {
		s.metrics = m
	}
}

// WithConversionClock overrides the time source, for tests.
func WithConversionClock(now func() time.Time) ConversionServiceOption {
	return func(s *ConversionService) {
		s.now = now
	}
}

// NewConversionService creates a new ConversionService.
func NewConversionService(
	rateService portssvc.RateSvcFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	opts ...ConversionServiceOption,
) *ConversionService {
	s := &ConversionService{
		rateService: rateService,
		txnRepo:     txnRepo,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert converts amount from fromCurrency to toCurrency for userID and
// records the result as a transaction. Exactly one transaction row is created
// per successful call; no row is created on any failure path.
func (s *ConversionService) Convert(ctx context.Context, userID, fromCurrency, toCurrency string, amount decimal.Decimal) (*domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordConversionError("invalid_amount")
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, amount.String())
	}

	// Currency validity is enforced by the rate service before any I/O.
	rate, err := s.rateService.GetExchangeRate(ctx, fromCurrency, toCurrency)
	if err != nil {
		s.metrics.RecordConversionError(errorReason(err))
		return nil, err
	}

	displayRate := rate.Round(displayScale)
	convertedAmount := amount.Mul(displayRate).Round(displayScale)

	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		UserID:         userID,
		SourceCurrency: fromCurrency,
		TargetCurrency: toCurrency,
		SourceAmount:   amount,
		TargetAmount:   convertedAmount,
		ExchangeRate:   displayRate,
		Timestamp:      s.now().UTC(),
	}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.metrics.RecordConversionError("persistence")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	s.metrics.RecordConversion(fromCurrency, toCurrency)
	return saved, nil
}

// errorReason maps a conversion failure onto a metric label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCurrency):
		return "invalid_currency"
	case errors.Is(err, apperrors.ErrExternalServiceUnavailable):
		return "rate_unavailable"
	default:
		return "internal"
	}
}
