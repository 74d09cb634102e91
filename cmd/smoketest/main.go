// Ad-hoc integrity check: runs a known-good snapshot end to end and
// prints the decision. Not a substitute for the package tests.
package main

import (
	"fmt"
	"log"

	"setuprank/internal/account"
	"setuprank/internal/engine"
	"setuprank/pkg/model"
)

func main() {
	days := 20
	snap := model.TickerSnapshot{
		Symbol:         "TEST",
		Price:          150.0,
		High:           155.0,
		Low:            148.0,
		Open:           149.0,
		Close:          150.0,
		PrevClose:      145.0,
		ChangePct:      3.45,
		Volume:         1300000,
		AvgVol20:       800000,
		AvgVol50:       900000,
		SMA50:          140.0,
		SMA200:         130.0,
		EMA9:           148.0,
		EMA21:          145.0,
		RSTrend:        model.RSRising,
		RecentHigh20:   152.0,
		RecentLow20:    140.0,
		DaysToEarnings: &days,
	}
	opt := model.OptionsSnapshot{HasOptions: true, SpreadPct: 0.01, OpenInterest: 2000}

	eng := engine.New(engine.DefaultConfig())

	fmt.Println("=== Engine Smoke Test ===")

	decision, err := eng.Analyze(snap, opt)
	if err != nil {
		log.Fatalf("analyze failed: %v", err)
	}

	acct := account.Lookup(decision.AccountID)
	fmt.Printf("\n[%s] score=%d grade=%s -> account %d (%s)\n",
		decision.Ticker, decision.Score, decision.Grade, decision.AccountID, acct.Name)
	fmt.Printf("Tags: %v\n", decision.Tags)
	fmt.Printf("Entry: %v\n", decision.EntryPlan)

	if decision.Score < 70 {
		log.Fatalf("expected a score >= 70 for the reference snapshot, got %d", decision.Score)
	}
	if decision.AccountID != account.OptionsSwing {
		log.Fatalf("expected the options-swing account, got %d", decision.AccountID)
	}

	// Validation must reject a broken snapshot outright.
	bad := snap
	bad.Price = 0
	if _, err := eng.Analyze(bad, opt); err == nil {
		log.Fatal("expected a validation error for a zero price")
	}

	fmt.Println("\nSmoke test PASSED")
}
