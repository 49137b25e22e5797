package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"rate-report/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	NBP      NBPConfig      `mapstructure:"nbp"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Report   ReportConfig   `mapstructure:"report"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig encapsulates PostgreSQL connectivity.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// NBPConfig captures remote rate source connectivity. MaxSpanDays mirrors
// the longest interval the NBP archive accepts in a single request.
type NBPConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Table          string        `mapstructure:"table"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	MaxSpanDays    int           `mapstructure:"max_span_days"`
}

// FetchConfig tunes cache reconciliation.
type FetchConfig struct {
	Workers int `mapstructure:"workers"`
}

// ReportConfig sets report output behaviour.
type ReportConfig struct {
	Format string `mapstructure:"format"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RATEREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ratereport")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("nbp.base_url", "https://api.nbp.pl/api/exchangerates")
	v.SetDefault("nbp.table", "A")
	v.SetDefault("nbp.request_timeout", "10s")
	v.SetDefault("nbp.user_agent", "ratereport/1.0")
	v.SetDefault("nbp.max_span_days", 93)

	v.SetDefault("fetch.workers", 1)

	v.SetDefault("report.format", "csv")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.NBP.MaxSpanDays <= 0 {
		return fmt.Errorf("nbp.max_span_days must be greater than zero")
	}
	if c.NBP.RequestTimeout <= 0 {
		return fmt.Errorf("nbp.request_timeout must be greater than zero")
	}
	if c.NBP.Table == "" {
		return fmt.Errorf("nbp.table must be set")
	}
	if c.Fetch.Workers <= 0 {
		return fmt.Errorf("fetch.workers must be greater than zero")
	}
	switch strings.ToLower(c.Report.Format) {
	case "csv", "json":
	default:
		return fmt.Errorf("report.format must be csv or json, got %q", c.Report.Format)
	}
	return nil
}
