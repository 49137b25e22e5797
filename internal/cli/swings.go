package cli

import (
	"github.com/spf13/cobra"

	"rate-report/internal/app"
)

var (
	swingsFrom       string
	swingsTo         string
	swingsCurrencies []string
	swingsOut        string
	swingsFormat     string
	swingsForce      bool
)

var swingsCmd = &cobra.Command{
	Use:   "swings",
	Short: "Report the currencies with the largest rate rise and fall",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDateFlag("from", swingsFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag("to", swingsTo)
		if err != nil {
			return err
		}

		opts := app.SwingsOptions{
			From:       from,
			To:         to,
			Currencies: swingsCurrencies,
			OutPath:    swingsOut,
			Format:     swingsFormat,
			Force:      swingsForce,
		}
		return getApp().Swings(cmd.Context(), opts)
	},
}

func init() {
	swingsCmd.Flags().StringVar(&swingsFrom, "from", "", "Start date (YYYY-MM-DD, inclusive), defaults to today")
	swingsCmd.Flags().StringVar(&swingsTo, "to", "", "End date (YYYY-MM-DD, inclusive), defaults to today")
	swingsCmd.Flags().StringSliceVar(&swingsCurrencies, "currency", nil, "Currency codes (ISO 4217), comma separated; all when omitted")
	swingsCmd.Flags().StringVar(&swingsOut, "out", "exchange_rates_report.csv", "Path of the report file")
	swingsCmd.Flags().StringVar(&swingsFormat, "format", "", "Report format: csv or json (overrides the --out extension)")
	swingsCmd.Flags().BoolVar(&swingsForce, "force", false, "Overwrite the report file if it exists")
}
