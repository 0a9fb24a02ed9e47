package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateTable maps 3-letter currency codes to their rate relative to a base
// currency. A table always contains an entry for its base currency equal to 1
// and is replaced wholesale on refresh, never mutated entry-by-entry.
type RateTable map[string]decimal.Decimal

// NewRateTable builds a RateTable from raw provider rates, enforcing the
// base-entry invariant.
func NewRateTable(baseCurrency string, rates map[string]decimal.Decimal) RateTable {
	table := make(RateTable, len(rates)+1)
	for code, rate := range rates {
		table[code] = rate
	}
	if _, ok := table[baseCurrency]; !ok {
		table[baseCurrency] = decimal.NewFromInt(1)
	}
	return table
}

// RateSnapshot is a persisted, timestamped copy of a rate table, used as the
// last fallback data source when the provider and the in-memory cache fail.
// Rates are serialized as strings to avoid binary floating-point drift.
type RateSnapshot struct {
	SnapshotID   string            `json:"snapshotID"` // Primary Key (UUID)
	BaseCurrency string            `json:"baseCurrency"`
	Rates        map[string]string `json:"rates"`
	LastUpdated  time.Time         `json:"lastUpdated"`
}

// NewRateSnapshot serializes a rate table into a persistable snapshot.
func NewRateSnapshot(baseCurrency string, table RateTable, lastUpdated time.Time) RateSnapshot {
	rates := make(map[string]string, len(table))
	for code, rate := range table {
		rates[code] = rate.String()
	}
	return RateSnapshot{
		SnapshotID:   uuid.NewString(),
		BaseCurrency: baseCurrency,
		Rates:        rates,
		LastUpdated:  lastUpdated,
	}
}

// Table deserializes the snapshot's string-valued rates back into a RateTable.
func (s RateSnapshot) Table() (RateTable, error) {
	rates := make(map[string]decimal.Decimal, len(s.Rates))
	for code, raw := range s.Rates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid snapshot rate %q for %s: %w", raw, code, err)
		}
		rates[code] = rate
	}
	return NewRateTable(s.BaseCurrency, rates), nil
}
