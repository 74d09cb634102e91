package engine

import (
	"math"

	"setuprank/pkg/model"
)

// DetectPattern runs the coarse pattern proxies over a snapshot.
// A close above the 20-day high on above-average volume is a Breakout;
// a close holding within 3% above a positive SMA50 is a Support Bounce.
// Richer detection over CandlesDaily (cup-and-handle, flat base,
// ascending triangle, flag) is not implemented yet; the router already
// understands those names.
func DetectPattern(t model.TickerSnapshot) model.PatternResult {
	if t.Price > t.RecentHigh20 && t.Volume > t.AvgVol20 {
		pivot := t.RecentHigh20
		return model.PatternResult{
			Name:       model.PatternBreakout,
			Confidence: 0.70,
			PivotPrice: &pivot,
		}
	}

	if t.SMA50 > 0 && t.Price > t.SMA50 && math.Abs(t.Price-t.SMA50)/t.SMA50 < 0.03 {
		pivot := t.SMA50
		return model.PatternResult{
			Name:       model.PatternSupportBounce,
			Confidence: 0.60,
			PivotPrice: &pivot,
		}
	}

	return model.PatternResult{Name: model.PatternNone}
}
