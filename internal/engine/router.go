package engine

import (
	"setuprank/internal/account"
	"setuprank/pkg/model"
)

// routeInput bundles everything the cascade predicates look at.
type routeInput struct {
	t            model.TickerSnapshot
	opt          model.OptionsSnapshot
	score        int
	pattern      model.PatternResult
	optGood      bool
	nearEarnings bool // days-to-earnings known and within the short block window
	hasTag       func(string) bool
}

// routeRule pairs a predicate with the account it routes to.
type routeRule struct {
	name    string
	account int
	match   func(in routeInput) bool
}

// positionPatterns are the names accepted by the pattern-position rule.
// The reserved names are not produced by the current detector; the rule
// keeps them so a richer detector routes without a cascade change.
var positionPatterns = map[string]bool{
	model.PatternCupAndHandle:  true,
	model.PatternFlatBase:      true,
	model.PatternAscTriangle:   true,
	model.PatternFlag:          true,
	model.PatternSupportBounce: true,
}

// routeRules returns the cascade in priority order. First match wins;
// reordering changes routing behavior.
func (e *Engine) routeRules() []routeRule {
	return []routeRule{
		{
			name:    "options swing",
			account: account.OptionsSwing,
			match: func(in routeInput) bool {
				return in.optGood && in.score >= e.cfg.OptionsMinScore &&
					!in.hasTag(TagEarningsNoise) && !in.hasTag(TagExtended)
			},
		},
		{
			name:    "short swing",
			account: account.ShortSwing,
			match: func(in routeInput) bool {
				return in.score >= 70 && !in.nearEarnings &&
					in.t.Close > in.t.EMA9 && in.t.Close > in.t.EMA21
			},
		},
		{
			name:    "pullback swing",
			account: account.SwingSqueeze,
			match: func(in routeInput) bool {
				return in.score >= 60 && !in.nearEarnings && in.t.Close > in.t.SMA50
			},
		},
		{
			name:    "position breakout",
			account: account.PosBreakout,
			match: func(in routeInput) bool {
				return in.score >= 70 && in.pattern.Name == model.PatternBreakout
			},
		},
		{
			name:    "position high volume",
			account: account.PosHighVol,
			match: func(in routeInput) bool {
				return in.score >= 65 && in.t.Volume > 2*in.t.AvgVol20
			},
		},
		{
			name:    "position pattern",
			account: account.PosPattern,
			match: func(in routeInput) bool {
				return in.score >= 70 && positionPatterns[in.pattern.Name]
			},
		},
		{
			name:    "long-term investment",
			account: account.Investment,
			match: func(in routeInput) bool {
				return in.score >= 60 && in.t.Price > in.t.SMA200 && in.t.SMA50 > in.t.SMA200
			},
		},
		{
			name:    "lottery",
			account: account.Lottery,
			match: func(in routeInput) bool {
				if !in.opt.HasOptions || in.hasTag(TagWideSpread) || in.hasTag(TagNoOptions) {
					return false
				}
				return in.t.DaysToEarnings == nil ||
					*in.t.DaysToEarnings > e.cfg.EarningsBlockOptionsDays
			},
		},
	}
}

// AssignAccount routes a scored snapshot into exactly one strategy
// account via the ordered cascade, or to the watchlist sentinel when no
// rule matches. Unknown days-to-earnings never counts as near earnings.
func (e *Engine) AssignAccount(t model.TickerSnapshot, o model.OptionsSnapshot, score int, tags []string, pattern model.PatternResult) int {
	tagSet := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tagSet[tag] = true
	}

	optGood, _ := e.ClassifyOptions(o)

	in := routeInput{
		t:            t,
		opt:          o,
		score:        score,
		pattern:      pattern,
		optGood:      optGood,
		nearEarnings: t.DaysToEarnings != nil && *t.DaysToEarnings <= e.cfg.EarningsBlockShortDays,
		hasTag:       func(tag string) bool { return tagSet[tag] },
	}

	for _, rule := range e.routeRules() {
		if rule.match(in) {
			return rule.account
		}
	}
	return account.Watchlist
}
