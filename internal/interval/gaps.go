package interval

import "time"

// GapTracker folds an ascending stream of covered dates into the list of
// sub-intervals of a requested range that the stream does not cover. It is
// a single-pass stateful fold: feed dates in ascending order (possibly
// across several calls), then call Finish exactly once.
type GapTracker struct {
	requested Interval
	prev      time.Time
	seen      bool
	gaps      []Interval
}

// NewGapTracker prepares a tracker for the requested interval.
func NewGapTracker(requested Interval) *GapTracker {
	return &GapTracker{requested: requested}
}

// Observe records one covered date. Dates must arrive in ascending order
// and must lie within the requested interval.
func (g *GapTracker) Observe(date time.Time) {
	d := Day(date)
	switch {
	case !g.seen:
		if d.After(g.requested.Start) {
			g.gaps = append(g.gaps, Interval{
				Start: g.requested.Start,
				End:   d.AddDate(0, 0, -1),
			})
		}
		g.seen = true
	case d.AddDate(0, 0, -1).After(g.prev):
		g.gaps = append(g.gaps, Interval{
			Start: g.prev.AddDate(0, 0, 1),
			End:   d.AddDate(0, 0, -1),
		})
	}
	g.prev = d
}

// Finish closes the fold and returns the ordered, non-overlapping gaps.
// An empty coverage stream yields the whole requested interval; a trailing
// uncovered stretch yields a final gap ending at the requested end.
func (g *GapTracker) Finish() []Interval {
	if !g.seen {
		return []Interval{g.requested}
	}
	if g.prev.Before(g.requested.End) {
		g.gaps = append(g.gaps, Interval{
			Start: g.prev.AddDate(0, 0, 1),
			End:   g.requested.End,
		})
	}
	return g.gaps
}
