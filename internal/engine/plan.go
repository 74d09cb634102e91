package engine

import (
	"fmt"

	"setuprank/internal/account"
	"setuprank/pkg/model"
)

// planTemplate holds the static entry/stop/exit text for one account.
// pivotEntry, when set, renders an extra first entry line from the
// pivot price.
type planTemplate struct {
	entry      []string
	stop       []string
	exit       []string
	pivotEntry func(pivot float64) string
}

var planTemplates = map[int]planTemplate{
	account.ShortSwing: {
		entry: []string{
			"Entry1: reclaim EMA9/EMA21 + green candle close",
			"Entry2: break above prior day high",
			"Volume confirm: today vol >= 1.5x avg20",
		},
		stop: []string{"Stop: close below EMA9", "Hard stop: -2R or below last swing low"},
		exit: []string{"Take profit: +3% to +7%", "Exit: close below EMA9"},
	},
	account.SwingSqueeze: {
		entry: []string{"Entry: pullback to EMA21 or SMA50", "Trigger: break of pullback trendline"},
		stop:  []string{"Stop: close below EMA21; deep pullback below SMA50"},
		exit:  []string{"Target: +10% to +20%", "Exit: breakdown below EMA21"},
	},
	account.PosBreakout: {
		pivotEntry: func(pivot float64) string {
			return fmt.Sprintf("Entry: buy breakout above pivot %.2f with vol >= 1.4x", pivot)
		},
		entry: []string{"Add: if holds pivot"},
		stop:  []string{"Stop: -7% to -8% (O'Neil rule)", "Exit early: fail back into base"},
		exit:  []string{"Take profit: partial +20%", "Hold: while price above EMA21"},
	},
	account.PosHighVol: {
		entry: []string{"Entry: after HV demand day, buy tight pullback", "Confirm: supply dry up"},
		stop:  []string{"Stop: close below EMA21 or demand-day low"},
		exit:  []string{"Exit: distribution spike or RS roll over"},
	},
	account.PosPattern: {
		entry: []string{"Entry: pattern pivot breakout", "Confirm: volume expansion"},
		stop:  []string{"Stop: -7% to -8% or pattern invalidation"},
		exit:  []string{"Exit: failure back into base"},
	},
	account.Investment: {
		entry: []string{"Entry: add on pullbacks to SMA50", "Prefer: rising RS"},
		stop:  []string{"Stop: major trend break (SMA50 down + price < SMA200)"},
		exit:  []string{"Exit: RS deteriorates", "Trim: climactic run"},
	},
	account.OptionsSwing: {
		entry: []string{"Entry: breakout/pullback near SMA50", "Options: spread <=5%, OI>=1000"},
		stop:  []string{"Stop: underlying closes below SMA50", "Opt Stop: -30% premium"},
		exit:  []string{"Take profit: +30%-50% option gain", "Time stop: 3-5 days no move"},
	},
	account.Lottery: {
		entry: []string{"Entry: intraday break + RVOL spike", "Rules: NO earnings"},
		stop:  []string{"Hard stop: underlying loses VWAP", "Opt Stop: -20% premium"},
		exit:  []string{"Exit quickly: +15% to +30%", "Time stop: end of day"},
	},
}

// BuildPlan renders the entry/stop/exit plan for the routed account.
// The pivot is the pattern's pivot price when present, else the 20-day
// high. Unrouted snapshots get a watch-only entry.
func BuildPlan(accountID int, t model.TickerSnapshot, pattern model.PatternResult) (entry, stop, exit []string) {
	tmpl, ok := planTemplates[accountID]
	if !ok {
		return []string{"Watch only"}, nil, nil
	}

	pivot := t.RecentHigh20
	if pattern.PivotPrice != nil {
		pivot = *pattern.PivotPrice
	}

	if tmpl.pivotEntry != nil {
		entry = append(entry, tmpl.pivotEntry(pivot))
	}
	entry = append(entry, tmpl.entry...)
	stop = append(stop, tmpl.stop...)
	exit = append(exit, tmpl.exit...)
	return entry, stop, exit
}
