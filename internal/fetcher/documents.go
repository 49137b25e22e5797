package fetcher

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rate-report/internal/interval"
	"rate-report/internal/storage"
)

// Document is one raw response document. The remote publishes two shapes:
// a whole-table day (all currencies, one date) and a single currency's
// dated series. Each shape knows how to flatten itself into canonical
// records, so downstream code never probes fields to tell them apart.
type Document interface {
	Records() ([]storage.RateRecord, error)
}

// TableDocument is the all-currencies shape: one effective date, one entry
// per currency.
type TableDocument struct {
	EffectiveDate string       `json:"effectiveDate"`
	Rates         []TableEntry `json:"rates"`
}

// TableEntry is a single currency's mid rate within a table document.
type TableEntry struct {
	Code string          `json:"code"`
	Mid  decimal.Decimal `json:"mid"`
}

// Records flattens the table document into canonical rate records.
func (d TableDocument) Records() ([]storage.RateRecord, error) {
	date, err := time.Parse(interval.DateFormat, d.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("parse table effective date: %w", err)
	}

	records := make([]storage.RateRecord, 0, len(d.Rates))
	for _, entry := range d.Rates {
		records = append(records, storage.RateRecord{
			Date:     date.UTC(),
			Currency: entry.Code,
			Rate:     entry.Mid,
		})
	}
	return records, nil
}

// CurrencyDocument is the single-currency shape: one code, one entry per
// effective date.
type CurrencyDocument struct {
	Code  string          `json:"code"`
	Rates []CurrencyEntry `json:"rates"`
}

// CurrencyEntry is a dated mid rate within a currency document.
type CurrencyEntry struct {
	EffectiveDate string          `json:"effectiveDate"`
	Mid           decimal.Decimal `json:"mid"`
}

// Records flattens the currency document into canonical rate records.
func (d CurrencyDocument) Records() ([]storage.RateRecord, error) {
	records := make([]storage.RateRecord, 0, len(d.Rates))
	for _, entry := range d.Rates {
		date, err := time.Parse(interval.DateFormat, entry.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("parse rate effective date for %s: %w", d.Code, err)
		}
		records = append(records, storage.RateRecord{
			Date:     date.UTC(),
			Currency: d.Code,
			Rate:     entry.Mid,
		})
	}
	return records, nil
}
