package interval

import (
	"fmt"
	"time"
)

// DateFormat is the wire and CLI representation of a calendar day.
const DateFormat = "2006-01-02"

// Interval is a closed day-granular date range [Start, End], Start <= End.
// Both bounds are UTC midnights.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds an interval after normalising both bounds to UTC midnight.
func New(start, end time.Time) (Interval, error) {
	s, e := Day(start), Day(end)
	if s.After(e) {
		return Interval{}, fmt.Errorf("invalid interval: start %s after end %s",
			s.Format(DateFormat), e.Format(DateFormat))
	}
	return Interval{Start: s, End: e}, nil
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SpanDays returns the difference End-Start in whole days. A single-day
// interval has span 0.
func (iv Interval) SpanDays() int {
	return int(iv.End.Sub(iv.Start).Hours() / 24)
}

// Contains reports whether the day t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(iv.Start) && !d.After(iv.End)
}

func (iv Interval) String() string {
	return iv.Start.Format(DateFormat) + " - " + iv.End.Format(DateFormat)
}

// Chunk partitions iv into consecutive sub-intervals acceptable to a remote
// source that caps the span of a single request at maxSpanDays. An interval
// whose span already fits is returned as-is; otherwise chunks are laid out
// greedily from Start, the last one clipped to End. The remote counts span
// as the End-Start difference, so the comparison is inclusive.
func Chunk(iv Interval, maxSpanDays int) []Interval {
	if maxSpanDays <= 0 {
		panic("interval: maxSpanDays must be positive")
	}
	if iv.SpanDays() <= maxSpanDays {
		return []Interval{iv}
	}

	var chunks []Interval
	for start := iv.Start; !start.After(iv.End); start = start.AddDate(0, 0, maxSpanDays) {
		end := start.AddDate(0, 0, maxSpanDays-1)
		if end.After(iv.End) {
			end = iv.End
		}
		chunks = append(chunks, Interval{Start: start, End: end})
	}
	return chunks
}
