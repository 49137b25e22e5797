// Package analytics computes rate-swing extrema over chunked record
// streams without materialising a full range in memory.
package analytics

import (
	"github.com/shopspring/decimal"

	"rate-report/internal/storage"
)

// Extremum names the currency with the best observed swing in one
// direction. Found distinguishes "no data at all" from a legitimate zero
// swing.
type Extremum struct {
	Currency string
	Value    decimal.Decimal
	Found    bool
}

// Swings holds the global best increase and decrease for a query range.
type Swings struct {
	Increase Extremum
	Decrease Extremum
}

// SwingAccumulator is a single-pass fold over record chunks ordered by
// (currency, date). For the currency currently open it tracks the running
// minimum and maximum rate, so a swing whose endpoints land in different
// chunks is still counted. Feed chunks in order, then call Result once;
// the accumulator must not be shared across goroutines.
type SwingAccumulator struct {
	best    Swings
	open    currencyState
	hasOpen bool
}

type currencyState struct {
	code       string
	runningMin decimal.Decimal
	runningMax decimal.Decimal
	bestInc    decimal.Decimal
	bestDec    decimal.Decimal
}

// NewSwingAccumulator returns an accumulator with both extrema unset, so
// any first observed swing, including zero, claims them.
func NewSwingAccumulator() *SwingAccumulator {
	return &SwingAccumulator{}
}

// Feed consumes one chunk. Records must keep arriving grouped by currency
// in date order; if the first group continues the previously open
// currency, its carry state is extended rather than reset.
func (a *SwingAccumulator) Feed(chunk []storage.RateRecord) {
	for _, rec := range chunk {
		if !a.hasOpen || rec.Currency != a.open.code {
			a.closeOpen()
			a.open = currencyState{
				code:       rec.Currency,
				runningMin: rec.Rate,
				runningMax: rec.Rate,
			}
			a.hasOpen = true
			continue
		}

		if inc := rec.Rate.Sub(a.open.runningMin); inc.GreaterThan(a.open.bestInc) {
			a.open.bestInc = inc
		}
		if rec.Rate.LessThan(a.open.runningMin) {
			a.open.runningMin = rec.Rate
		}

		if dec := a.open.runningMax.Sub(rec.Rate); dec.GreaterThan(a.open.bestDec) {
			a.open.bestDec = dec
		}
		if rec.Rate.GreaterThan(a.open.runningMax) {
			a.open.runningMax = rec.Rate
		}
	}
}

// Result closes the open currency and returns the global extrema. A stream
// with no records yields both extrema unset.
func (a *SwingAccumulator) Result() Swings {
	a.closeOpen()
	return a.best
}

// closeOpen folds the open currency's local extrema into the global best.
// Replacement is on strict improvement only, so ties keep the currency
// seen first.
func (a *SwingAccumulator) closeOpen() {
	if !a.hasOpen {
		return
	}
	if !a.best.Increase.Found || a.open.bestInc.GreaterThan(a.best.Increase.Value) {
		a.best.Increase = Extremum{Currency: a.open.code, Value: a.open.bestInc, Found: true}
	}
	if !a.best.Decrease.Found || a.open.bestDec.GreaterThan(a.best.Decrease.Value) {
		a.best.Decrease = Extremum{Currency: a.open.code, Value: a.open.bestDec, Found: true}
	}
	a.hasOpen = false
}
