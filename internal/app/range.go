package app

import (
	"errors"
	"time"

	"rate-report/internal/currency"
	"rate-report/internal/interval"
)

// firstArchiveDate is the earliest day the NBP archive serves.
var firstArchiveDate = time.Date(2002, time.January, 2, 0, 0, 0, 0, time.UTC)

// resolveRange validates a user supplied date range and clamps it to what
// the archive can answer, warning when it does.
func (a *App) resolveRange(from, to time.Time) (interval.Interval, error) {
	iv, err := interval.New(from, to)
	if err != nil {
		return interval.Interval{}, err
	}

	if iv.Start.Before(firstArchiveDate) {
		a.Logger.Warn().
			Str("first_available", firstArchiveDate.Format(interval.DateFormat)).
			Msg("archive data starts later than requested; clamping start date")
		iv.Start = firstArchiveDate
	}

	if today := interval.Day(time.Now()); iv.End.After(today) {
		a.Logger.Warn().
			Str("today", today.Format(interval.DateFormat)).
			Msg("only archive data is available; clamping end date to today")
		iv.End = today
	}

	if iv.Start.After(iv.End) {
		return interval.Interval{}, errors.New("requested range lies entirely outside the available archive")
	}
	return iv, nil
}

// resolveCurrencies validates and normalises the optional currency filter.
func (a *App) resolveCurrencies(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	return currency.Normalize(codes)
}
