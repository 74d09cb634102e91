// Package scanner runs the setup engine across many ticker snapshots
// in parallel. The engine is pure, so evaluations need no coordination
// beyond collecting the independent results.
package scanner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"setuprank/internal/engine"
	"setuprank/pkg/model"
)

// Request pairs one ticker snapshot with its options snapshot.
type Request struct {
	Ticker  model.TickerSnapshot  `json:"ticker"`
	Options model.OptionsSnapshot `json:"options"`
}

// Result is the outcome of one evaluation. Err is set when the input
// failed validation; Decision is nil in that case.
type Result struct {
	Symbol   string               `json:"symbol"`
	Decision *model.SetupDecision `json:"decision,omitempty"`
	Err      string               `json:"error,omitempty"`
}

// BatchResult aggregates one batch run.
type BatchResult struct {
	TotalEvaluated int           `json:"total_evaluated"`
	Failed         int           `json:"failed"`
	Results        []Result      `json:"results"`
	ScanTime       time.Duration `json:"scan_time"`
}

// ProgressCallback is called with progress updates.
type ProgressCallback func(done, total int)

// Scanner evaluates snapshot batches with a worker pool.
type Scanner struct {
	engine       *engine.Engine
	workers      int
	progressFunc ProgressCallback
}

// New creates a scanner over the given engine.
func New(e *engine.Engine, workers int) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{engine: e, workers: workers}
}

// SetProgressCallback sets the progress callback function.
func (s *Scanner) SetProgressCallback(fn ProgressCallback) {
	s.progressFunc = fn
}

// Run evaluates all requests and returns results in request order.
// Context cancellation stops the remaining work; already-finished
// results are still returned.
func (s *Scanner) Run(ctx context.Context, requests []Request) *BatchResult {
	startTime := time.Now()

	results := make([]Result, len(requests))
	if len(requests) == 0 {
		return &BatchResult{Results: []Result{}, ScanTime: time.Since(startTime)}
	}

	jobChan := make(chan int, len(requests))
	for i := range requests {
		jobChan <- i
	}
	close(jobChan)

	var doneCount int64

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				req := requests[i]
				decision, err := s.engine.Analyze(req.Ticker, req.Options)
				if err != nil {
					results[i] = Result{Symbol: req.Ticker.Symbol, Err: err.Error()}
				} else {
					results[i] = Result{Symbol: req.Ticker.Symbol, Decision: decision}
				}

				count := atomic.AddInt64(&doneCount, 1)
				if s.progressFunc != nil {
					s.progressFunc(int(count), len(requests))
				}
			}
		}()
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != "" {
			failed++
		}
	}

	return &BatchResult{
		TotalEvaluated: len(requests),
		Failed:         failed,
		Results:        results,
		ScanTime:       time.Since(startTime),
	}
}
