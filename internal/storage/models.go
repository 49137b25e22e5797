package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"rate-report/internal/interval"
)

// RateRecord is one cached daily exchange rate. Records are immutable once
// written; (Date, Currency) is the natural key enforced by the store.
type RateRecord struct {
	Date     time.Time
	Currency string
	Rate     decimal.Decimal
}

// RangeQuery selects cached rows for a date interval and an optional
// currency subset. An empty Currencies slice means the whole universe.
type RangeQuery struct {
	Range      interval.Interval
	Currencies []string
}
