package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidCurrency indicates a currency code outside the supported set.
// Wrapped messages carry the offending code.
var ErrInvalidCurrency = errors.New("invalid currency code")

// ErrInvalidAmount indicates a non-positive monetary amount.
// Wrapped messages carry the offending value.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrExternalServiceUnavailable indicates that every rate-retrieval fallback
// tier (fresh cache, live fetch, stale cache, snapshot store) was exhausted.
var ErrExternalServiceUnavailable = errors.New("exchange rate service unavailable")

// ErrPersistence indicates that a required store write failed after the
// business operation itself succeeded.
var ErrPersistence = errors.New("persistence failure")
