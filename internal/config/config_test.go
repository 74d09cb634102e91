package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Scanner.Workers)
	assert.Equal(t, 70, cfg.Engine.OptionsMinScore)
	assert.InDelta(t, 0.05, cfg.Engine.OptionsMaxSpreadPct, 1e-9)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
engine:
  options_min_score: 80
  options_min_oi: 500
scanner:
  workers: 4
server:
  port: 9000
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Engine.OptionsMinScore)
	assert.Equal(t, 500, cfg.Engine.OptionsMinOI)
	assert.Equal(t, 4, cfg.Scanner.Workers)
	assert.Equal(t, 9000, cfg.Server.Port)
	// Untouched fields keep their defaults.
	assert.Equal(t, 7, cfg.Engine.EarningsBlockShortDays)
}

func TestLoadPortEnvOverride(t *testing.T) {
	t.Setenv("PORT", "8080")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mut     func(*Config)
		wantErr bool
	}{
		{"Defaults are valid", func(c *Config) {}, false},
		{"Zero workers", func(c *Config) { c.Scanner.Workers = 0 }, true},
		{"Port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"Negative spread limit", func(c *Config) { c.Engine.OptionsMaxSpreadPct = -0.1 }, true},
		{"Negative OI limit", func(c *Config) { c.Engine.OptionsMinOI = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEngineConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.OptionsMinScore = 75

	ec := cfg.EngineConfig()
	assert.Equal(t, 75, ec.OptionsMinScore)
	assert.Equal(t, cfg.Engine.EarningsBlockOptionsDays, ec.EarningsBlockOptionsDays)
}
