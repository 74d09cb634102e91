// Package engine implements the setup scoring and classification
// pipeline: feature extraction, options liquidity classification, score
// composition, grading, account routing, and plan rendering. Every
// stage is a pure function of its inputs.
package engine

import (
	"errors"
	"fmt"
	"math"

	"setuprank/pkg/model"
)

// ValidationError reports a malformed input snapshot. The pipeline
// fails fast on these rather than scoring defaulted fields.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid snapshot: %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is an input-validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validateSnapshot(t model.TickerSnapshot) error {
	if t.Symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	if t.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"volume", t.Volume},
		{"avg_vol_20", t.AvgVol20},
		{"avg_vol_50", t.AvgVol50},
		{"sma_50", t.SMA50},
		{"sma_200", t.SMA200},
		{"ema_9", t.EMA9},
		{"ema_21", t.EMA21},
		{"recent_high_20", t.RecentHigh20},
		{"recent_low_20", t.RecentLow20},
	} {
		if f.value < 0 {
			return &ValidationError{Field: f.name, Reason: "must not be negative"}
		}
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Field: f.name, Reason: "must be a finite number"}
		}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"high", t.High},
		{"low", t.Low},
		{"change_pct", t.ChangePct},
		{"gap_pct_today", t.GapPctToday},
		{"gap_pct_prev_day", t.GapPctPrevDay},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Field: f.name, Reason: "must be a finite number"}
		}
	}
	return nil
}

// Analyze runs the full pipeline over one ticker snapshot and returns
// the routed, graded, and planned decision. It returns a
// ValidationError for malformed input and never partial results.
func (e *Engine) Analyze(t model.TickerSnapshot, o model.OptionsSnapshot) (*model.SetupDecision, error) {
	if err := validateSnapshot(t); err != nil {
		return nil, err
	}

	pattern := DetectPattern(t)
	score, tags, reasons := e.ComputeScore(t, o, pattern)
	grade := GradeFromScore(score)

	optGood, _ := e.ClassifyOptions(o)
	if !optGood {
		tags = append(tags, TagOptionsNotIdeal)
	}

	if containsTag(tags, TagExtended) {
		reasons = append(reasons, "High spike risk: likely consolidation")
	}
	if containsTag(tags, TagEarningsNoise) {
		reasons = append(reasons, "Move likely earnings-driven; wait for base")
	}

	accountID := e.AssignAccount(t, o, score, tags, pattern)
	entry, stop, exit := BuildPlan(accountID, t, pattern)

	return &model.SetupDecision{
		AccountID: accountID,
		Ticker:    t.Symbol,
		Grade:     grade,
		Score:     score,
		EntryPlan: entry,
		StopPlan:  stop,
		ExitPlan:  exit,
		Tags:      dedupeTags(tags),
		Pattern:   pattern,
		Reasons:   reasons,
		Price:     t.Price,
		ChangePct: t.ChangePct,
	}, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// dedupeTags collapses duplicates while preserving first-seen order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
