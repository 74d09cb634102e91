package model

import "time"

// Candle represents a single daily candlestick (OHLCV data).
// Reserved for richer pattern detection; current detection only
// uses the aggregate fields on TickerSnapshot.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// RS trend classifications. Anything else is treated as falling.
const (
	RSRising  = "rising"
	RSFlat    = "flat"
	RSFalling = "falling"
)

// TickerSnapshot is the immutable input record for one symbol at one
// evaluation instant. ChangePct is in percent points (3.45 = +3.45%);
// the gap fields are fractions (0.07 = 7%).
type TickerSnapshot struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Open      float64 `json:"open"`
	Close     float64 `json:"close"`
	PrevClose float64 `json:"prev_close"`
	ChangePct float64 `json:"change_pct"`

	Volume   float64 `json:"volume"`
	AvgVol20 float64 `json:"avg_vol_20"`
	AvgVol50 float64 `json:"avg_vol_50"`

	SMA50  float64 `json:"sma_50"`
	SMA200 float64 `json:"sma_200"`
	EMA9   float64 `json:"ema_9"`
	EMA21  float64 `json:"ema_21"`

	RSTrend string `json:"rs_trend"` // rising | flat | falling

	RecentHigh20 float64 `json:"recent_high_20"`
	RecentLow20  float64 `json:"recent_low_20"`

	// DaysToEarnings is nil when the next earnings date is unknown.
	DaysToEarnings   *int    `json:"days_to_earnings,omitempty"`
	EarningsMoveFlag bool    `json:"earnings_move_flag"`
	GapPctToday      float64 `json:"gap_pct_today"`
	GapPctPrevDay    float64 `json:"gap_pct_prev_day"`

	CandlesDaily []Candle `json:"candles_daily,omitempty"`
}

// OptionsSnapshot describes the options chain liquidity for a symbol.
// HasOptions=false short-circuits all spread/OI evaluation.
type OptionsSnapshot struct {
	HasOptions   bool    `json:"has_options"`
	SpreadPct    float64 `json:"spread_pct"` // fraction of underlying price
	OpenInterest int     `json:"open_interest"`
	TotalVolume  int     `json:"total_volume"`
}

// Pattern names. The reserved names are consumed by the account router
// but not yet produced by the detector.
const (
	PatternNone          = "None"
	PatternBreakout      = "Breakout"
	PatternSupportBounce = "Support Bounce"
	PatternCupAndHandle  = "CupAndHandle"
	PatternFlatBase      = "FlatBase"
	PatternAscTriangle   = "AscTriangle"
	PatternFlag          = "Flag"
)

// PatternResult is the output of pattern detection. Constructed fresh
// per evaluation and never mutated afterwards.
type PatternResult struct {
	Name       string   `json:"name"`
	Confidence float64  `json:"confidence"` // 0..1
	PivotPrice *float64 `json:"pivot_price,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// Detected reports whether any pattern was found.
func (p PatternResult) Detected() bool {
	return p.Name != "" && p.Name != PatternNone
}

// SetupDecision is the engine's sole output record: one fully routed,
// graded, and planned setup for one ticker snapshot. Reasons preserve
// computation order; Tags are de-duplicated at construction.
type SetupDecision struct {
	AccountID int           `json:"account_id"` // 0 = watchlist, no account assigned
	Ticker    string        `json:"ticker"`
	Grade     string        `json:"grade"`
	Score     int           `json:"score"` // 0..100
	EntryPlan []string      `json:"entry_plan"`
	StopPlan  []string      `json:"stop_plan"`
	ExitPlan  []string      `json:"exit_plan"`
	Tags      []string      `json:"tags"`
	Pattern   PatternResult `json:"pattern"`
	Reasons   []string      `json:"reasons"`
	Price     float64       `json:"price"`
	ChangePct float64       `json:"change_pct"`
}
