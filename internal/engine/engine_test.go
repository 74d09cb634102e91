package engine

import (
	"reflect"
	"strings"
	"testing"

	"setuprank/internal/account"
	"setuprank/pkg/model"
)

// Scenario: clean leader with liquid options, far from earnings.
func TestAnalyzeOptionsSwingLeader(t *testing.T) {
	e := New(DefaultConfig())
	snap := uptrendSnapshot()
	opt := liquidOptions()

	d, err := e.Analyze(snap, opt)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if d.Score != 100 {
		t.Errorf("score = %d, want 100", d.Score)
	}
	if d.Grade != "A+" {
		t.Errorf("grade = %q, want A+", d.Grade)
	}
	if d.AccountID != account.OptionsSwing {
		t.Errorf("account = %d, want %d", d.AccountID, account.OptionsSwing)
	}
	if d.Pattern.Name != model.PatternNone {
		t.Errorf("pattern = %q, want %q", d.Pattern.Name, model.PatternNone)
	}
	for _, want := range []string{TagTightSpread, TagGoodOI, TagOptionsOK} {
		if !containsTag(d.Tags, want) {
			t.Errorf("missing tag %q in %v", want, d.Tags)
		}
	}
	if d.Ticker != "TEST" || d.Price != 150 || d.ChangePct != 3.45 {
		t.Errorf("identity fields not carried through: %+v", d)
	}
}

// Scenario: breakout above the 20-day high with volume, near earnings,
// no options. Routed to the breakout-position account with the pivot
// interpolated into the plan.
func TestAnalyzeBreakoutPosition(t *testing.T) {
	e := New(DefaultConfig())
	snap := model.TickerSnapshot{
		Symbol:         "BRK",
		Price:          105,
		High:           106,
		Low:            103,
		Open:           103,
		Close:          105,
		PrevClose:      102,
		ChangePct:      2.9,
		Volume:         1600000,
		AvgVol20:       1000000,
		AvgVol50:       1100000,
		SMA50:          90,
		SMA200:         80,
		EMA9:           100,
		EMA21:          98,
		RSTrend:        model.RSRising,
		RecentHigh20:   100,
		RecentLow20:    88,
		DaysToEarnings: intPtr(5),
	}

	d, err := e.Analyze(snap, model.OptionsSnapshot{})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if d.Pattern.Name != model.PatternBreakout {
		t.Fatalf("pattern = %q, want %q", d.Pattern.Name, model.PatternBreakout)
	}
	if d.Pattern.Confidence != 0.70 {
		t.Errorf("confidence = %v, want 0.70", d.Pattern.Confidence)
	}
	if d.Pattern.PivotPrice == nil || *d.Pattern.PivotPrice != 100 {
		t.Errorf("pivot = %v, want 100", d.Pattern.PivotPrice)
	}
	if d.AccountID != account.PosBreakout {
		t.Errorf("account = %d, want %d", d.AccountID, account.PosBreakout)
	}
	if len(d.EntryPlan) == 0 || !strings.Contains(d.EntryPlan[0], "100.00") {
		t.Errorf("entry plan %v does not interpolate the pivot", d.EntryPlan)
	}
}

// Scenario: gap into earnings two days out. The noise penalty lands and
// the earnings-sensitive accounts are all excluded.
func TestAnalyzeEarningsNoiseExclusions(t *testing.T) {
	e := New(DefaultConfig())
	snap := uptrendSnapshot()
	snap.DaysToEarnings = intPtr(2)
	snap.GapPctToday = 0.07

	d, err := e.Analyze(snap, liquidOptions())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if !containsTag(d.Tags, TagEarningsNoise) {
		t.Fatalf("missing %s tag in %v", TagEarningsNoise, d.Tags)
	}
	// 60+25+12+15 = 112, minus the 12+6 noise penalty.
	if d.Score != 94 {
		t.Errorf("score = %d, want 94", d.Score)
	}
	excluded := []int{account.OptionsSwing, account.ShortSwing, account.SwingSqueeze}
	for _, id := range excluded {
		if d.AccountID == id {
			t.Errorf("account %d must be excluded near earnings", id)
		}
	}
	found := false
	for _, r := range d.Reasons {
		if r == "Move likely earnings-driven; wait for base" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing earnings warning reason in %v", d.Reasons)
	}
}

// Scenario: over-extended climactic tape. Extension penalty of 16 and
// the options-swing account is excluded despite liquid options.
func TestAnalyzeExtendedExclusion(t *testing.T) {
	e := New(DefaultConfig())
	snap := model.TickerSnapshot{
		Symbol:       "EXT",
		Price:        125,
		High:         130,
		Low:          120,
		Open:         121,
		Close:        125,
		PrevClose:    119,
		ChangePct:    5.0,
		Volume:       2500000,
		AvgVol20:     1000000,
		AvgVol50:     1100000,
		SMA50:        100, // 25% above
		SMA200:       90,
		EMA9:         124,
		EMA21:        120, // only 4.2% above, term stays off
		RSTrend:      model.RSRising,
		RecentHigh20: 131,
		RecentLow20:  100,
	}

	if got := e.ExtendedPenalty(snap); got != 16 {
		t.Fatalf("ExtendedPenalty() = %d, want 16", got)
	}

	d, err := e.Analyze(snap, liquidOptions())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if !containsTag(d.Tags, TagExtended) {
		t.Fatalf("missing %s tag in %v", TagExtended, d.Tags)
	}
	if d.AccountID == account.OptionsSwing {
		t.Error("options-swing account must be excluded when extended")
	}
	found := false
	for _, r := range d.Reasons {
		if r == "High spike risk: likely consolidation" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing spike warning reason in %v", d.Reasons)
	}
}

func TestAnalyzeTagsAreUnique(t *testing.T) {
	e := New(DefaultConfig())
	d, err := e.Analyze(uptrendSnapshot(), model.OptionsSnapshot{HasOptions: true, SpreadPct: 0.08, OpenInterest: 100})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	seen := make(map[string]bool)
	for _, tag := range d.Tags {
		if seen[tag] {
			t.Errorf("duplicate tag %q in %v", tag, d.Tags)
		}
		seen[tag] = true
	}
	if !containsTag(d.Tags, TagOptionsNotIdeal) {
		t.Errorf("missing %s for illiquid options: %v", TagOptionsNotIdeal, d.Tags)
	}
}

func TestAnalyzeNoOptionsTagsWithoutOptions(t *testing.T) {
	e := New(DefaultConfig())
	d, err := e.Analyze(uptrendSnapshot(), model.OptionsSnapshot{HasOptions: false})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	for _, forbidden := range []string{TagTightSpread, TagWideSpread, TagGoodOI, TagLowOI, TagOptionsOK} {
		if containsTag(d.Tags, forbidden) {
			t.Errorf("tag %q must not appear when options are absent: %v", forbidden, d.Tags)
		}
	}
	if !containsTag(d.Tags, TagNoOptions) {
		t.Errorf("missing %s tag: %v", TagNoOptions, d.Tags)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	e := New(DefaultConfig())
	snap := uptrendSnapshot()
	opt := liquidOptions()

	first, err := e.Analyze(snap, opt)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	second, err := e.Analyze(snap, opt)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("decisions differ:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	e := New(DefaultConfig())

	tests := []struct {
		name string
		mut  func(*model.TickerSnapshot)
	}{
		{"Empty symbol", func(s *model.TickerSnapshot) { s.Symbol = "" }},
		{"Zero price", func(s *model.TickerSnapshot) { s.Price = 0 }},
		{"Negative price", func(s *model.TickerSnapshot) { s.Price = -1 }},
		{"Negative volume", func(s *model.TickerSnapshot) { s.Volume = -100 }},
		{"Negative SMA50", func(s *model.TickerSnapshot) { s.SMA50 = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := uptrendSnapshot()
			tt.mut(&snap)

			d, err := e.Analyze(snap, model.OptionsSnapshot{})
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !IsValidationError(err) {
				t.Errorf("error %v is not a ValidationError", err)
			}
			if d != nil {
				t.Errorf("expected no partial result, got %+v", d)
			}
		})
	}
}

// Score stays within [0,100] across a spread of degenerate inputs.
func TestAnalyzeScoreBounds(t *testing.T) {
	e := New(DefaultConfig())

	snaps := []model.TickerSnapshot{
		uptrendSnapshot(),
		{Symbol: "MIN", Price: 0.01},
		{Symbol: "FALL", Price: 10, Close: 10, High: 12, Low: 9, SMA50: 20, SMA200: 30,
			EMA9: 11, EMA21: 12, RSTrend: model.RSFalling, ChangePct: -9,
			Volume: 5000000, AvgVol20: 1000000, GapPctToday: -0.15, GapPctPrevDay: -0.15,
			EarningsMoveFlag: true, DaysToEarnings: intPtr(1)},
		{Symbol: "ZERO", Price: 5, RSTrend: model.RSRising, ChangePct: 1},
	}

	for _, snap := range snaps {
		d, err := e.Analyze(snap, model.OptionsSnapshot{})
		if err != nil {
			t.Fatalf("%s: Analyze() error: %v", snap.Symbol, err)
		}
		if d.Score < 0 || d.Score > 100 {
			t.Errorf("%s: score %d outside [0,100]", snap.Symbol, d.Score)
		}
	}
}
