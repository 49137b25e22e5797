package app

import "context"

// Sync reconciles the cache for a range without producing a report.
func (a *App) Sync(ctx context.Context, opts SyncOptions) error {
	iv, err := a.resolveRange(opts.From, opts.To)
	if err != nil {
		return err
	}

	codes, err := a.resolveCurrencies(opts.Currencies)
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := a.newCollector(store, opts.Workers).Reconcile(ctx, iv, codes); err != nil {
		return err
	}

	count, err := store.CountRange(ctx, rangeQuery(iv, codes))
	if err != nil {
		return err
	}
	a.Logger.Info().
		Str("range", iv.String()).
		Int64("cached_rows", count).
		Msg("cache synchronised")
	return nil
}
