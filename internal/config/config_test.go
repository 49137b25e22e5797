package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "ratereport", cfg.App.Name)
	require.Equal(t, "https://api.nbp.pl/api/exchangerates", cfg.NBP.BaseURL)
	require.Equal(t, "A", cfg.NBP.Table)
	require.Equal(t, 93, cfg.NBP.MaxSpanDays)
	require.Equal(t, 10*time.Second, cfg.NBP.RequestTimeout)
	require.Equal(t, 1, cfg.Fetch.Workers)
	require.Equal(t, "csv", cfg.Report.Format)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.NBP.MaxSpanDays = 0
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Fetch.Workers = 0
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Report.Format = "xml"
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.NBP.RequestTimeout = 0
	require.Error(t, cfg.Validate())

	require.NoError(t, base().Validate())
}
