package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"rate-report/internal/storage"
)

func series(code string, start time.Time, rates ...float64) []storage.RateRecord {
	records := make([]storage.RateRecord, len(rates))
	for i, r := range rates {
		records[i] = storage.RateRecord{
			Date:     start.AddDate(0, 0, i),
			Currency: code,
			Rate:     decimal.NewFromFloat(r),
		}
	}
	return records
}

var day0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func compute(chunks ...[]storage.RateRecord) Swings {
	acc := NewSwingAccumulator()
	for _, chunk := range chunks {
		acc.Feed(chunk)
	}
	return acc.Result()
}

func TestSwingsNoData(t *testing.T) {
	result := compute()
	require.False(t, result.Increase.Found)
	require.False(t, result.Decrease.Found)
}

func TestSwingsFlatSeries(t *testing.T) {
	result := compute(series("USD", day0, 1.0, 1.0, 1.0, 1.0))
	require.True(t, result.Increase.Found)
	require.True(t, result.Increase.Value.IsZero())
	require.True(t, result.Decrease.Found)
	require.True(t, result.Decrease.Value.IsZero())
	require.Equal(t, "USD", result.Increase.Currency)
}

func TestSwingsSinglePoint(t *testing.T) {
	result := compute(series("CHF", day0, 4.5))
	require.True(t, result.Increase.Found)
	require.True(t, result.Increase.Value.IsZero())
	require.True(t, result.Decrease.Value.IsZero())
}

func TestSwingsMixedSeries(t *testing.T) {
	result := compute(series("EUR", day0, -1.0, -2.0, 1.0, -3.0, 2.0))
	require.True(t, result.Increase.Value.Equal(decimal.NewFromFloat(5.0)),
		"best increase should be -3.0 -> 2.0, got %s", result.Increase.Value)
	require.True(t, result.Decrease.Value.Equal(decimal.NewFromFloat(4.0)),
		"best decrease should be 1.0 -> -3.0, got %s", result.Decrease.Value)
}

func TestSwingsPicksBestCurrency(t *testing.T) {
	chunk := append(
		series("AUD", day0, 1.0, 1.5),
		series("CHF", day0, 2.0, 5.0)...,
	)
	chunk = append(chunk, series("EUR", day0, 3.0, 1.0)...)

	result := compute(chunk)
	require.Equal(t, "CHF", result.Increase.Currency)
	require.True(t, result.Increase.Value.Equal(decimal.NewFromFloat(3.0)))
	require.Equal(t, "EUR", result.Decrease.Currency)
	require.True(t, result.Decrease.Value.Equal(decimal.NewFromFloat(2.0)))
}

func TestSwingsTieKeepsEarlierCurrency(t *testing.T) {
	chunk := append(
		series("AUD", day0, 1.0, 2.0),
		series("CHF", day0, 3.0, 4.0)...,
	)
	result := compute(chunk)
	require.Equal(t, "AUD", result.Increase.Currency)
	require.True(t, result.Increase.Value.Equal(decimal.NewFromFloat(1.0)))
}

// A currency's series split across two chunks must produce the same
// extrema as the unsplit series; the swing here straddles the boundary.
func TestSwingsCarryAcrossChunkBoundary(t *testing.T) {
	full := series("JPY", day0, 5.0, 4.0, 3.0, 2.0, 1.0, 2.0, 3.0, 4.0, 5.0, 6.0)
	unsplit := compute(full)
	split := compute(full[:5], full[5:])

	require.Equal(t, unsplit, split)
	require.True(t, split.Increase.Value.Equal(decimal.NewFromFloat(5.0)),
		"increase 1.0 -> 6.0 straddles the boundary")
	require.True(t, split.Decrease.Value.Equal(decimal.NewFromFloat(4.0)))
}

// Extrema are identical for every possible chunk boundary placement,
// including boundaries that also split currency groups.
func TestSwingsChunkingEquivalence(t *testing.T) {
	records := append(
		series("EUR", day0, 4.1, 4.3, 4.0, 4.6),
		series("USD", day0, 3.9, 3.5, 3.8, 3.2)...,
	)
	records = append(records, series("XDR", day0, 5.0, 5.5, 5.2)...)

	want := compute(records)
	for split := 1; split < len(records); split++ {
		got := compute(records[:split], records[split:])
		require.Equal(t, want, got, "split at %d", split)
	}
}

func TestSwingsResultAfterMultipleChunksPerCurrency(t *testing.T) {
	// Currency resumes in a later chunk immediately after its own group.
	a := series("EUR", day0, 1.0, 0.5)
	b := series("EUR", day0.AddDate(0, 0, 2), 2.5)
	result := compute(a, b)
	require.True(t, result.Increase.Value.Equal(decimal.NewFromFloat(2.0)))
	require.True(t, result.Decrease.Value.Equal(decimal.NewFromFloat(0.5)))
}
