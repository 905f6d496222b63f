// Package config builds the explicit configuration value handed to every component.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys
const (
	KeyTMDBAPIKey       = "tmdb.apikey"
	KeyTMDBBaseURL      = "tmdb.base_url"
	KeyTMDBImageBaseURL = "tmdb.image_base_url"
	KeyTMDBTimeout      = "tmdb.timeout"

	KeyHomeTopCategories = "home.top_categories"
	KeyHomeConcurrency   = "home.concurrency"

	KeyStatsDBFile = "stats.dbfile"

	KeyServerAddr           = "server.addr"
	KeyServerAllowedOrigins = "server.allowed_origins"

	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyLogMaxSizeMB  = "log.max_size_mb"
	KeyLogMaxBackups = "log.max_backups"
)

// ErrMissingAPIKey is returned when no TMDB API key is configured.
var ErrMissingAPIKey = errors.New("TMDB API key is required (set API_KEY or TMDB_API_KEY, or tmdb.apikey in config)")

// Config holds the runtime configuration.
type Config struct {
	TMDB   TMDBConfig
	Home   HomeConfig
	Stats  StatsConfig
	Server ServerConfig
	Log    LogConfig
}

// TMDBConfig configures the TMDB client.
type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Timeout      time.Duration
}

// HomeConfig configures the home page aggregation.
type HomeConfig struct {
	TopCategories int
	Concurrency   int
}

// StatsConfig configures the genre statistics store.
type StatsConfig struct {
	DBFile string
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// LogConfig configures logging output.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTMDBBaseURL, "https://api.themoviedb.org/3")
	v.SetDefault(KeyTMDBImageBaseURL, "https://image.tmdb.org/t/p/original")
	v.SetDefault(KeyTMDBTimeout, "10s")

	v.SetDefault(KeyHomeTopCategories, 3)
	v.SetDefault(KeyHomeConcurrency, 4)

	v.SetDefault(KeyStatsDBFile, "./marquee.db")

	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyServerAllowedOrigins, []string{})

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSizeMB, 10)
	v.SetDefault(KeyLogMaxBackups, 3)
}

// BindEnv enables environment overrides. Nested keys map to upper-case names
// with underscores (tmdb.timeout -> TMDB_TIMEOUT). The API key is also read
// from API_KEY.
func BindEnv(v *viper.Viper) error {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyTMDBAPIKey, "TMDB_API_KEY", "API_KEY"); err != nil {
		return fmt.Errorf("failed to bind API key environment variables: %w", err)
	}
	return nil
}

// Load builds a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString(KeyTMDBTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyTMDBTimeout, err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid %s: must be positive", KeyTMDBTimeout)
	}

	cfg := &Config{
		TMDB: TMDBConfig{
			APIKey:       strings.TrimSpace(v.GetString(KeyTMDBAPIKey)),
			BaseURL:      v.GetString(KeyTMDBBaseURL),
			ImageBaseURL: v.GetString(KeyTMDBImageBaseURL),
			Timeout:      timeout,
		},
		Home: HomeConfig{
			TopCategories: v.GetInt(KeyHomeTopCategories),
			Concurrency:   v.GetInt(KeyHomeConcurrency),
		},
		Stats: StatsConfig{
			DBFile: v.GetString(KeyStatsDBFile),
		},
		Server: ServerConfig{
			Addr:           v.GetString(KeyServerAddr),
			AllowedOrigins: v.GetStringSlice(KeyServerAllowedOrigins),
		},
		Log: LogConfig{
			Level:      v.GetString(KeyLogLevel),
			File:       v.GetString(KeyLogFile),
			MaxSizeMB:  v.GetInt(KeyLogMaxSizeMB),
			MaxBackups: v.GetInt(KeyLogMaxBackups),
		},
	}

	if cfg.Home.TopCategories < 0 {
		return nil, fmt.Errorf("invalid %s: must not be negative", KeyHomeTopCategories)
	}
	if cfg.Home.Concurrency < 1 {
		cfg.Home.Concurrency = 1
	}

	return cfg, nil
}

// RequireAPIKey reports ErrMissingAPIKey when no TMDB API key is set.
func (c *Config) RequireAPIKey() error {
	if c.TMDB.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
