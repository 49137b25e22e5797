package fetcher

import (
	"context"
	"errors"

	"rate-report/internal/interval"
)

// ErrNoData marks an explicit "no data for this sub-range" answer from the
// remote source, as opposed to a transport failure. Both degrade to an
// empty result, but they are logged differently.
var ErrNoData = errors.New("no data for requested range")

// RateSource fetches raw rate documents from the remote publisher.
type RateSource interface {
	// FetchRange retrieves documents for one interval. An empty code
	// requests the all-currencies table endpoint; otherwise the single
	// currency endpoint for that code. Transport failures and explicit
	// no-data answers yield a nil slice and nil error; anything else is
	// returned to the caller.
	FetchRange(ctx context.Context, code string, iv interval.Interval) ([]Document, error)
}
