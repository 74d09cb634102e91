package engine

// Config holds the tunable thresholds of the scoring pipeline.
// Sub-score weights are fixed; only the blocking windows and
// liquidity limits are meant to be adjusted per deployment.
type Config struct {
	EarningsBlockShortDays   int     // swing accounts blocked within this many days of earnings
	EarningsBlockOptionsDays int     // lottery account blocked within this many days of earnings
	ExtendedFromSMA50Warn    float64 // fraction above SMA50 considered extended
	ExtendedFromEMA21Warn    float64 // fraction above EMA21 considered extended
	OptionsMinScore          int     // minimum score for the options-swing account
	OptionsMaxSpreadPct      float64 // maximum spread as a fraction of price
	OptionsMinOI             int     // minimum open interest
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		EarningsBlockShortDays:   7,
		EarningsBlockOptionsDays: 10,
		ExtendedFromSMA50Warn:    0.20,
		ExtendedFromEMA21Warn:    0.15,
		OptionsMinScore:          70,
		OptionsMaxSpreadPct:      0.05,
		OptionsMinOI:             1000,
	}
}

// Engine evaluates ticker snapshots into setup decisions. All methods
// are pure functions of their inputs; an Engine is safe for concurrent
// use across tickers.
type Engine struct {
	cfg Config
}

// New creates an engine with the given thresholds.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}
