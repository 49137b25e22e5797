package app

import (
	"bufio"
	"context"
	"os"

	"rate-report/internal/interval"
	"rate-report/internal/storage"
)

// History reconciles the cache for the requested range and writes the full
// historical listing, streaming the cached rows chunk by chunk.
func (a *App) History(ctx context.Context, opts HistoryOptions) error {
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

	var chartData *chartBuilder
	if opts.PNGPath != "" {
		chartData = newChartBuilder()
	}

	query := rangeQuery(iv, codes)
	switch format {
	case "json":
		report := &historyJSON{}
		err = store.ScanRange(ctx, query, func(chunk []storage.RateRecord) error {
			if chartData != nil {
				if err := chartData.WriteChunk(chunk); err != nil {
					return err
				}
			}
			return report.WriteChunk(chunk)
		})
		if err != nil {
			return err
		}
		if err := report.WriteTo(path); err != nil {
			return err
		}
	default:
		file, createErr := os.Create(path)
		if createErr != nil {
			return createErr
		}
		report := newHistoryCSV(bufio.NewWriter(file))
		err = store.ScanRange(ctx, query, func(chunk []storage.RateRecord) error {
			if chartData != nil {
				if err := chartData.WriteChunk(chunk); err != nil {
					return err
				}
			}
			return report.WriteChunk(chunk)
		})
		if err != nil {
			file.Close()
			return err
		}
		if err := report.Flush(); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
	}

	if chartData != nil {
		if err := chartData.Render(opts.PNGPath); err != nil {
			return err
		}
	}

	a.Logger.Info().Str("path", path).Msg("history report generated")
	return nil
}

func rangeQuery(iv interval.Interval, codes []string) storage.RangeQuery {
	return storage.RangeQuery{Range: iv, Currencies: codes}
}
