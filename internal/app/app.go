package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"rate-report/internal/collector"
	"rate-report/internal/config"
	"rate-report/internal/fetcher"
	"rate-report/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if err := storage.Migrate(ctx, a.Config.Database); err != nil {
		return nil, nil, err
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

func (a *App) newCollector(store collector.Store, workers int) *collector.Collector {
	source := fetcher.NewClient(fetcher.Options{
		BaseURL:   a.Config.NBP.BaseURL,
		Table:     a.Config.NBP.Table,
		Timeout:   a.Config.NBP.RequestTimeout,
		UserAgent: a.Config.NBP.UserAgent,
	}, a.Logger)

	if workers <= 0 {
		workers = a.Config.Fetch.Workers
	}

	return collector.New(store, source, collector.Options{
		MaxSpanDays: a.Config.NBP.MaxSpanDays,
		Workers:     workers,
	}, a.Logger)
}

// SyncOptions configure cache reconciliation without report output.
type SyncOptions struct {
	From       time.Time
	To         time.Time
	Currencies []string
	Workers    int
}

// HistoryOptions hold parameters for the historical listing report.
type HistoryOptions struct {
	From       time.Time
	To         time.Time
	Currencies []string
	OutPath    string
	Format     string
	PNGPath    string
	Force      bool
}

// SwingsOptions hold parameters for the largest-swing analytics report.
type SwingsOptions struct {
	From       time.Time
	To         time.Time
	Currencies []string
	OutPath    string
	Format     string
	Force      bool
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}
