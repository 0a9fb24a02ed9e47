package services

import (
	"sync"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/core/domain"
)

// RateCache is an in-memory TTL cache of rate tables keyed by base currency.
// It is an explicit, injectable object: construct one per process (or per
// test scope) and hand it to the rate service. Safe for concurrent use.
// Concurrent refreshes for the same key are not coordinated; last writer wins.
type RateCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	rates     domain.RateTable
	expiresAt time.Time
}

// NewRateCache creates an empty RateCache.
func NewRateCache() *RateCache {
	return &RateCache{
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached table for baseCurrency if it has not expired at now.
func (c *RateCache) Get(baseCurrency string, now time.Time) (domain.RateTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[baseCurrency]
	if !ok || !now.Before(entry.expiresAt) {
		return nil, false
	}
	return entry.rates, true
}

// GetStale returns the cached table for baseCurrency regardless of expiry.
// Used as a degraded result when a live fetch fails.
func (c *RateCache) GetStale(baseCurrency string) (domain.RateTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[baseCurrency]
	if !ok {
		return nil, false
	}
	return entry.rates, true
}

// Put replaces the entry for baseCurrency wholesale.
func (c *RateCache) Put(baseCurrency string, rates domain.RateTable, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[baseCurrency] = cacheEntry{
		rates:     rates,
		expiresAt: expiresAt,
	}
}
