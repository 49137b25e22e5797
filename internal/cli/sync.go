package cli

import (
	"github.com/spf13/cobra"

	"rate-report/internal/app"
)

var (
	syncFrom       string
	syncTo         string
	syncCurrencies []string
	syncWorkers    int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch any missing rates for a date range into the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDateFlag("from", syncFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag("to", syncTo)
		if err != nil {
			return err
		}

		opts := app.SyncOptions{
			From:       from,
			To:         to,
			Currencies: syncCurrencies,
			Workers:    syncWorkers,
		}
		return getApp().Sync(cmd.Context(), opts)
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncFrom, "from", "", "Start date (YYYY-MM-DD, inclusive), defaults to today")
	syncCmd.Flags().StringVar(&syncTo, "to", "", "End date (YYYY-MM-DD, inclusive), defaults to today")
	syncCmd.Flags().StringSliceVar(&syncCurrencies, "currency", nil, "Currency codes (ISO 4217), comma separated; all when omitted")
	syncCmd.Flags().IntVar(&syncWorkers, "workers", 0, "Concurrent fetch requests (defaults to config)")
}
