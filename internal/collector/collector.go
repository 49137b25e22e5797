// Package collector reconciles the local rate cache with the remote
// source: it finds the uncovered sub-ranges of a query, chunks them to the
// remote's span limit, fetches, normalises, and merges.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"rate-report/internal/fetcher"
	"rate-report/internal/interval"
	"rate-report/internal/storage"
)

// ErrRangeUnavailable signals that the remote source holds no data for the
// entire requested range. Partial unavailability is absorbed instead.
var ErrRangeUnavailable = errors.New("data for the requested range is not available on the server")

// Store is the slice of the storage layer reconciliation needs.
type Store interface {
	ScanCoverage(ctx context.Context, q storage.RangeQuery, fn func([]time.Time) error) error
	BulkInsert(ctx context.Context, records []storage.RateRecord) (int64, error)
}

// Options tune a Collector.
type Options struct {
	MaxSpanDays int
	Workers     int
}

// Collector drives cache reconciliation for one query at a time.
type Collector struct {
	store  Store
	source fetcher.RateSource
	logger zerolog.Logger
	opts   Options
}

// New constructs a Collector.
func New(store Store, source fetcher.RateSource, opts Options, logger zerolog.Logger) *Collector {
	if opts.MaxSpanDays <= 0 {
		opts.MaxSpanDays = 93
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Collector{
		store:  store,
		source: source,
		logger: logger.With().Str("component", "collector").Logger(),
		opts:   opts,
	}
}

// request is one remote call: a single currency (or the whole table when
// Code is empty) over a span-limited interval.
type request struct {
	Code  string
	Range interval.Interval
}

// Reconcile makes the cache complete for the interval and currency subset,
// fetching whatever is missing. Transient failures leave their sub-range
// uncovered for a later attempt; only a remote that has nothing at all for
// the full requested range is an error.
func (c *Collector) Reconcile(ctx context.Context, iv interval.Interval, currencies []string) error {
	c.logger.Info().
		Str("range", iv.String()).
		Strs("currencies", currencies).
		Msg("reconciling cache")

	gaps, err := c.missingRanges(ctx, iv, currencies)
	if err != nil {
		return err
	}
	if len(gaps) == 0 {
		c.logger.Debug().Str("range", iv.String()).Msg("cache already complete")
		return nil
	}

	requests := buildRequests(gaps, currencies, c.opts.MaxSpanDays)

	var collected atomic.Int64
	if c.opts.Workers > 1 {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(c.opts.Workers)
		for _, req := range requests {
			group.Go(func() error {
				return c.fetchAndMerge(groupCtx, req, &collected)
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}
	} else {
		for _, req := range requests {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.fetchAndMerge(ctx, req, &collected); err != nil {
				return err
			}
		}
	}

	if collected.Load() == 0 && len(gaps) == 1 && gaps[0] == iv {
		return ErrRangeUnavailable
	}
	return nil
}

// missingRanges streams coverage out of the store through a gap tracker.
func (c *Collector) missingRanges(ctx context.Context, iv interval.Interval, currencies []string) ([]interval.Interval, error) {
	tracker := interval.NewGapTracker(iv)
	q := storage.RangeQuery{Range: iv, Currencies: currencies}

	err := c.store.ScanCoverage(ctx, q, func(dates []time.Time) error {
		for _, date := range dates {
			tracker.Observe(date)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan coverage: %w", err)
	}

	gaps := tracker.Finish()
	if len(gaps) > 0 {
		c.logger.Debug().
			Int("gaps", len(gaps)).
			Str("first", gaps[0].String()).
			Msg("found uncovered ranges")
	}
	return gaps, nil
}

// buildRequests expands gaps into span-limited remote calls in the fixed
// fetch order: outer loop over currencies, inner over chunks ascending.
func buildRequests(gaps []interval.Interval, currencies []string, maxSpanDays int) []request {
	codes := currencies
	if len(codes) == 0 {
		codes = []string{""}
	}

	var requests []request
	for _, code := range codes {
		for _, gap := range gaps {
			for _, chunk := range interval.Chunk(gap, maxSpanDays) {
				requests = append(requests, request{Code: code, Range: chunk})
			}
		}
	}
	return requests
}

func (c *Collector) fetchAndMerge(ctx context.Context, req request, collected *atomic.Int64) error {
	docs, err := c.source.FetchRange(ctx, req.Code, req.Range)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", req.Range, err)
	}

	for _, doc := range docs {
		records, err := doc.Records()
		if err != nil {
			return fmt.Errorf("normalize response for %s: %w", req.Range, err)
		}
		if len(records) == 0 {
			continue
		}

		inserted, err := c.store.BulkInsert(ctx, records)
		if err != nil {
			return fmt.Errorf("merge records for %s: %w", req.Range, err)
		}
		collected.Add(int64(len(records)))

		c.logger.Debug().
			Str("range", req.Range.String()).
			Int("records", len(records)).
			Int64("inserted", inserted).
			Msg("merged fetched records")
	}
	return nil
}
