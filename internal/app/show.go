package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"rate-report/internal/interval"
)

// Show prints the most recently cached rate records.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := store.ListRecent(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "no cached rates found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Date\tCurrency\tRate")
	for _, rec := range records {
		fmt.Fprintf(writer, "%s\t%s\t%s\n",
			rec.Date.Format(interval.DateFormat),
			rec.Currency,
			rec.Rate.String(),
		)
	}
	return writer.Flush()
}
