package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"setuprank/internal/engine"
)

// Config represents the application configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Scanner ScannerConfig `yaml:"scanner"`
	Server  ServerConfig  `yaml:"server"`
}

// EngineConfig holds the scoring pipeline thresholds.
type EngineConfig struct {
	EarningsBlockShortDays   int     `yaml:"earnings_block_short_days"`
	EarningsBlockOptionsDays int     `yaml:"earnings_block_options_days"`
	ExtendedFromSMA50Warn    float64 `yaml:"extended_from_sma50_warn"`
	ExtendedFromEMA21Warn    float64 `yaml:"extended_from_ema21_warn"`
	OptionsMinScore          int     `yaml:"options_min_score"`
	OptionsMaxSpreadPct      float64 `yaml:"options_max_spread_pct"`
	OptionsMinOI             int     `yaml:"options_min_oi"`
}

// ScannerConfig holds batch evaluation settings.
type ScannerConfig struct {
	Workers int `yaml:"workers"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port          int `yaml:"port"`
	RatePerMinute int `yaml:"rate_per_minute"` // analyze requests per minute per server
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	ec := engine.DefaultConfig()
	return &Config{
		Engine: EngineConfig{
			EarningsBlockShortDays:   ec.EarningsBlockShortDays,
			EarningsBlockOptionsDays: ec.EarningsBlockOptionsDays,
			ExtendedFromSMA50Warn:    ec.ExtendedFromSMA50Warn,
			ExtendedFromEMA21Warn:    ec.ExtendedFromEMA21Warn,
			OptionsMinScore:          ec.OptionsMinScore,
			OptionsMaxSpreadPct:      ec.OptionsMaxSpreadPct,
			OptionsMinOI:             ec.OptionsMinOI,
		},
		Scanner: ScannerConfig{
			Workers: 10,
		},
		Server: ServerConfig{
			Port:          8000,
			RatePerMinute: 120,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; PORT overrides the configured server port.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("parsing PORT: %w", err)
		}
		cfg.Server.Port = p
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Scanner.Workers < 1 {
		return fmt.Errorf("scanner workers must be at least 1")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in 1..65535")
	}
	if c.Engine.OptionsMaxSpreadPct < 0 {
		return fmt.Errorf("options_max_spread_pct must not be negative")
	}
	if c.Engine.OptionsMinOI < 0 {
		return fmt.Errorf("options_min_oi must not be negative")
	}
	return nil
}

// EngineConfig converts the YAML section into the engine's config type.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		EarningsBlockShortDays:   c.Engine.EarningsBlockShortDays,
		EarningsBlockOptionsDays: c.Engine.EarningsBlockOptionsDays,
		ExtendedFromSMA50Warn:    c.Engine.ExtendedFromSMA50Warn,
		ExtendedFromEMA21Warn:    c.Engine.ExtendedFromEMA21Warn,
		OptionsMinScore:          c.Engine.OptionsMinScore,
		OptionsMaxSpreadPct:      c.Engine.OptionsMaxSpreadPct,
		OptionsMinOI:             c.Engine.OptionsMinOI,
	}
}
