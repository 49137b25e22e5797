package cli

import (
	"github.com/spf13/cobra"

	"rate-report/internal/app"
)

var (
	historyFrom       string
	historyTo         string
	historyCurrencies []string
	historyOut        string
	historyFormat     string
	historyPNG        string
	historyForce      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Generate a report with historical exchange rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDateFlag("from", historyFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag("to", historyTo)
		if err != nil {
			return err
		}

		opts := app.HistoryOptions{
			From:       from,
			To:         to,
			Currencies: historyCurrencies,
			OutPath:    historyOut,
			Format:     historyFormat,
			PNGPath:    historyPNG,
			Force:      historyForce,
		}
		return getApp().History(cmd.Context(), opts)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "Start date (YYYY-MM-DD, inclusive), defaults to today")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "End date (YYYY-MM-DD, inclusive), defaults to today")
	historyCmd.Flags().StringSliceVar(&historyCurrencies, "currency", nil, "Currency codes (ISO 4217), comma separated; all when omitted")
	historyCmd.Flags().StringVar(&historyOut, "out", "exchange_rates_report.csv", "Path of the report file")
	historyCmd.Flags().StringVar(&historyFormat, "format", "", "Report format: csv or json (overrides the --out extension)")
	historyCmd.Flags().StringVar(&historyPNG, "png", "", "Also render a PNG chart to this path")
	historyCmd.Flags().BoolVar(&historyForce, "force", false, "Overwrite the report file if it exists")
}
