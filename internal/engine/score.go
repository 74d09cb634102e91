package engine

import (
	"fmt"
	"math"

	"setuprank/pkg/model"
)

const baseScore = 60

// ComputeScore combines the sub-scores into a composite in [0,100] and
// returns the accumulated tags and reasons. Tags may contain duplicates;
// callers de-duplicate at the decision boundary. Reasons preserve
// computation order for auditability.
func (e *Engine) ComputeScore(t model.TickerSnapshot, o model.OptionsSnapshot, pattern model.PatternResult) (int, []string, []string) {
	var tags, reasons []string

	trend := TrendScore(t)
	rs := RSScore(t)
	vol := VolumeScore(t)

	score := baseScore + trend + rs + vol

	if pattern.Detected() {
		score += int(math.Round(8 * pattern.Confidence))
		reasons = append(reasons, fmt.Sprintf("Pattern: %s", pattern.Name))
	}

	if ep := e.ExtendedPenalty(t); ep > 0 {
		score -= ep
		tags = append(tags, TagExtended)
		reasons = append(reasons, fmt.Sprintf("Extended penalty: -%d", ep))
	}

	if earnP := EarningsPenalty(t); earnP > 0 {
		score -= earnP
		tags = append(tags, TagEarningsNoise)
		reasons = append(reasons, fmt.Sprintf("Earnings noise penalty: -%d", earnP))
	}

	reasons = append(reasons, fmt.Sprintf("RS: %s", t.RSTrend))

	optGood, optTags := e.ClassifyOptions(o)
	tags = append(tags, optTags...)
	if optGood {
		tags = append(tags, TagOptionsOK)
	}

	score = clamp(score, 0, 100)

	reasons = append(reasons, fmt.Sprintf("Trend:%d RS:%d Vol:%d", trend, rs, vol))

	return score, tags, reasons
}

// GradeFromScore maps a composite score to a letter grade. Band
// boundaries are inclusive on the lower end.
func GradeFromScore(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B+"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C"
	default:
		return "D"
	}
}
