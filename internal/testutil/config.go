package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/config"
)

// TestAPIKey is the API key NewViper configures.
const TestAPIKey = "test-tmdb-key"

// NewViper returns a fresh viper instance with marquee defaults and a test API key.
// overrides are set on top of the defaults.
func NewViper(t *testing.T, overrides map[string]any) *viper.Viper {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyTMDBAPIKey, TestAPIKey)
	for key, value := range overrides {
		v.Set(key, value)
	}
	return v
}

// LoadConfig builds a Config from NewViper(t, overrides) and fails the test on error.
func LoadConfig(t *testing.T, overrides map[string]any) *config.Config {
	t.Helper()

	cfg, err := config.Load(NewViper(t, overrides))
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	return cfg
}
