package app

import (
	"context"

	"rate-report/internal/analytics"
	"rate-report/internal/storage"
)

// Swings reconciles the cache for the requested range, folds the cached
// rows through the streaming swing accumulator, and writes the analytics
// report naming the currencies with the largest single-step rise and fall.
func (a *App) Swings(ctx context.Context, opts SwingsOptions) error {
	iv, err := a.resolveRange(opts.From, opts.To)
	if err != nil {
		return err
	}

	codes, err := a.resolveCurrencies(opts.Currencies)
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = a.Config.Report.Format
	}
	path, format, err := resolveReportPath(opts.OutPath, format, opts.Force)
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := a.newCollector(store, 0).Reconcile(ctx, iv, codes); err != nil {
		return err
	}

	acc := analytics.NewSwingAccumulator()
	err = store.ScanRange(ctx, rangeQuery(iv, codes), func(chunk []storage.RateRecord) error {
		acc.Feed(chunk)
		return nil
	})
	if err != nil {
		return err
	}
	swings := acc.Result()

	switch format {
	case "json":
		err = writeSwingsJSON(path, swings)
	default:
		err = writeSwingsCSV(path, swings)
	}
	if err != nil {
		return err
	}

	a.Logger.Info().Str("path", path).Msg("swings report generated")
	return nil
}
