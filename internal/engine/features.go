package engine

import (
	"math"

	"setuprank/pkg/model"
)

// TrendScore scores moving-average alignment in [-25, 25].
// Price vs SMA50 (+/-8), price vs SMA200 (+/-10), SMA50 vs SMA200
// (+/-10), and a +5 bonus when EMA9 is above EMA21.
func TrendScore(t model.TickerSnapshot) int {
	s := 0
	if t.Price > t.SMA50 {
		s += 8
	} else {
		s -= 8
	}
	if t.Price > t.SMA200 {
		s += 10
	} else {
		s -= 10
	}
	if t.SMA50 > t.SMA200 {
		s += 10
	} else {
		s -= 10
	}
	if t.EMA9 > t.EMA21 {
		s += 5
	}
	return clamp(s, -25, 25)
}

// RSScore scores the relative-strength trend classification.
// Anything other than rising or flat counts as falling.
func RSScore(t model.TickerSnapshot) int {
	switch t.RSTrend {
	case model.RSRising:
		return 12
	case model.RSFlat:
		return 4
	default:
		return -10
	}
}

// VolumeScore scores volume confirmation in [-15, 15]. Deliberately
// coarse: it does not distinguish up-volume from down-volume days.
func VolumeScore(t model.TickerSnapshot) int {
	s := 0
	if t.Volume >= 1.5*t.AvgVol20 {
		s += 8
	}
	if t.ChangePct > 0 {
		s += 7
	} else {
		s -= 5
	}
	return clamp(s, -15, 15)
}

// ExtendedPenalty sums over-extension components: distance above SMA50,
// distance above EMA21, and a wide-range high-volume climax-day proxy.
// Never negative. Zero-valued averages deactivate their component.
func (e *Engine) ExtendedPenalty(t model.TickerSnapshot) int {
	p := 0
	if t.SMA50 > 0 {
		if (t.Price-t.SMA50)/t.SMA50 >= e.cfg.ExtendedFromSMA50Warn {
			p += 10
		}
	}
	if t.EMA21 > 0 {
		if (t.Price-t.EMA21)/t.EMA21 >= e.cfg.ExtendedFromEMA21Warn {
			p += 8
		}
	}
	var rangePct float64
	if t.Low > 0 {
		rangePct = (t.High - t.Low) / t.Low
	}
	if rangePct >= 0.07 && t.Volume >= 2.0*t.AvgVol20 {
		p += 6
	}
	return p
}

// IsEarningsNoise reports whether the latest move is likely
// earnings-driven: the explicit flag, a large gap right before a known
// earnings date, or a large gap the prior day.
func IsEarningsNoise(t model.TickerSnapshot) bool {
	if t.EarningsMoveFlag {
		return true
	}
	if t.DaysToEarnings != nil && *t.DaysToEarnings <= 3 && math.Abs(t.GapPctToday) >= 0.06 {
		return true
	}
	if math.Abs(t.GapPctPrevDay) >= 0.08 {
		return true
	}
	return false
}

// EarningsPenalty returns 0 when the move is not earnings noise,
// otherwise a base 12 plus 6 for imminent earnings and 6 for a
// double-digit gap.
func EarningsPenalty(t model.TickerSnapshot) int {
	if !IsEarningsNoise(t) {
		return 0
	}
	penalty := 12
	if t.DaysToEarnings != nil && *t.DaysToEarnings <= 3 {
		penalty += 6
	}
	if math.Abs(t.GapPctToday) >= 0.10 {
		penalty += 6
	}
	return penalty
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
