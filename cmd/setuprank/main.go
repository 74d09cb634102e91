package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"setuprank/internal/account"
	"setuprank/internal/config"
	"setuprank/internal/engine"
	"setuprank/internal/scanner"
	"setuprank/internal/web"
	"setuprank/pkg/model"
)

var (
	cfgFile   string
	inputFile string
	format    string
	workers   int
	port      int
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "setuprank",
		Short: "Grade ticker snapshots and route them into strategy accounts",
		Long: `Setuprank scores a market-data snapshot for one ticker and routes it
into one of nine strategy accounts with an entry/stop/exit plan.

Examples:
  setuprank analyze --input snapshot.json
  setuprank scan --input batch.json --workers 8
  setuprank serve --port 8000`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a single ticker snapshot",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&inputFile, "input", "-", "snapshot request JSON file (- for stdin)")
	analyzeCmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Score a batch of ticker snapshots in parallel",
		RunE:  runScan,
	}
	scanCmd.Flags().StringVar(&inputFile, "input", "", "batch request JSON file (required)")
	scanCmd.Flags().StringVar(&format, "format", "table", "output format: table, json")
	scanCmd.Flags().IntVar(&workers, "workers", 0, "number of parallel workers (default from config)")
	_ = scanCmd.MarkFlagRequired("input")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard page and JSON API",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")

	rootCmd.AddCommand(analyzeCmd, scanCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *engine.Engine, zerolog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("invalid config: %w", err)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	return cfg, engine.New(cfg.EngineConfig()), log, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, eng, _, err := setup()
	if err != nil {
		return err
	}

	var reader io.Reader = os.Stdin
	if inputFile != "-" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		reader = f
	}

	var req scanner.Request
	if err := json.NewDecoder(reader).Decode(&req); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}

	decision, err := eng.Analyze(req.Ticker, req.Options)
	if err != nil {
		return err
	}

	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(decision)
	}
	printDecision(decision.Ticker, decision)
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, eng, _, err := setup()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("reading batch file: %w", err)
	}

	var requests []scanner.Request
	if err := json.Unmarshal(data, &requests); err != nil {
		return fmt.Errorf("decoding batch file: %w", err)
	}
	if len(requests) == 0 {
		return fmt.Errorf("batch file contains no requests")
	}

	if workers == 0 {
		workers = cfg.Scanner.Workers
	}
	s := scanner.New(eng, workers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted. Stopping scan...")
		cancel()
	}()

	bar := progressbar.NewOptions(len(requests),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Scoring"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]█[reset]",
			SaucerHead:    "[green]█[reset]",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	s.SetProgressCallback(func(done, total int) {
		_ = bar.Set(done)
	})

	result := s.Run(ctx, requests)
	_ = bar.Finish()
	fmt.Println()

	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return outputBatchTable(result)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, eng, log, err := setup()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	srv := web.NewServer(cfg, eng, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func outputBatchTable(result *scanner.BatchResult) error {
	scored := make([]scanner.Result, 0, len(result.Results))
	for _, r := range result.Results {
		if r.Decision != nil {
			scored = append(scored, r)
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Decision.Score > scored[j].Decision.Score
	})

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Symbol", "Grade", "Score", "Account", "Pattern", "Tags"}),
	)

	for _, r := range scored {
		d := r.Decision
		acct := account.Lookup(d.AccountID)
		name := acct.Name
		if d.AccountID == account.Watchlist {
			name = "Watchlist"
		}

		tags := ""
		for i, tag := range d.Tags {
			if i > 0 {
				tags += ","
			}
			tags += tag
		}
		if len(tags) > 40 {
			tags = tags[:40] + "..."
		}

		table.Append([]string{
			d.Ticker,
			d.Grade,
			fmt.Sprintf("%d", d.Score),
			name,
			d.Pattern.Name,
			tags,
		})
	}

	table.Render()

	if result.Failed > 0 {
		fmt.Printf("\n%d snapshot(s) failed validation:\n", result.Failed)
		for _, r := range result.Results {
			if r.Err != "" {
				fmt.Printf("  [%s] %s\n", r.Symbol, r.Err)
			}
		}
	}

	fmt.Printf("\nScored %d snapshots in %s\n", result.TotalEvaluated, result.ScanTime.Round(time.Millisecond))
	return nil
}

func printDecision(symbol string, d *model.SetupDecision) {
	acct := account.Lookup(d.AccountID)
	acctName := acct.Name
	if d.AccountID == account.Watchlist {
		acctName = "Watchlist"
	}

	fmt.Printf("[%s] grade %s, score %d -> %s\n", symbol, d.Grade, d.Score, acctName)
	if d.AccountID != account.Watchlist {
		fmt.Printf("  Strategy: %s (%s)\n", acct.Strategy, acct.HoldingPeriod)
	}
	if d.Pattern.Detected() {
		fmt.Printf("  Pattern: %s (confidence %.0f%%)\n", d.Pattern.Name, d.Pattern.Confidence*100)
	}

	fmt.Println("\n  Reasons:")
	for _, r := range d.Reasons {
		fmt.Printf("    - %s\n", r)
	}
	if len(d.Tags) > 0 {
		fmt.Print("  Tags: ")
		for i, tag := range d.Tags {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(tag)
		}
		fmt.Println()
	}

	fmt.Println("\n  Entry:")
	for _, line := range d.EntryPlan {
		fmt.Printf("    - %s\n", line)
	}
	if len(d.StopPlan) > 0 {
		fmt.Println("  Stop:")
		for _, line := range d.StopPlan {
			fmt.Printf("    - %s\n", line)
		}
	}
	if len(d.ExitPlan) > 0 {
		fmt.Println("  Exit:")
		for _, line := range d.ExitPlan {
			fmt.Printf("    - %s\n", line)
		}
	}
}
