package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rate-report/internal/app"
	"rate-report/internal/config"
	"rate-report/internal/interval"
	"rate-report/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	appHandle *app.App
)

var rootCmd = &cobra.Command{
	Use:   "ratereport",
	Short: "Cache NBP exchange rates locally and generate reports",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appHandle != nil {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		logger := logging.NewLogger(cfg.Logging)
		appHandle = app.NewApp(cfg, logger)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(swingsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)
}

func getApp() *app.App {
	if appHandle == nil {
		panic("application not initialized; PersistentPreRunE not executed")
	}
	return appHandle
}

// parseDateFlag parses a YYYY-MM-DD flag value, defaulting to today when
// empty.
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return interval.Day(time.Now()), nil
	}
	parsed, err := time.Parse(interval.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s value %q, acceptable format is YYYY-MM-DD", name, value)
	}
	return parsed, nil
}
