package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/trackprobe/resilience"
)

// DefaultCheckTimeout bounds a whole aggregated run.
const DefaultCheckTimeout = 5 * time.Second

// AggregatorConfig configures an Aggregator.
type AggregatorConfig struct {
	// Timeout bounds each run of the registered checks.
	// Default: DefaultCheckTimeout
	Timeout time.Duration

	// MaxConcurrency limits how many checks run at once. Zero means no limit.
	MaxConcurrency int
}

// Report is the outcome of one aggregated run.
type Report struct {
	Status    Status
	Results   map[string]Result
	Timestamp time.Time
}

// Aggregator runs registered checkers together.
//
// Contract:
//   - Concurrency: safe for concurrent use; registration may race with Run.
//   - Errors: a checker that times out or panics is reported unhealthy.
type Aggregator struct {
	cfg AggregatorConfig

	mu       sync.RWMutex
	checkers []Checker
	byName   map[string]Checker
}

// NewAggregator creates an Aggregator.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultCheckTimeout
	}
	return &Aggregator{cfg: cfg, byName: make(map[string]Checker)}
}

// Register adds checkers in order. It fails on the first name already taken.
func (a *Aggregator) Register(checkers ...Checker) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range checkers {
		if _, taken := a.byName[c.Name()]; taken {
			return fmt.Errorf("%w: %q", ErrDuplicateChecker, c.Name())
		}
		a.byName[c.Name()] = c
		a.checkers = append(a.checkers, c)
	}
	return nil
}

// Names returns the registered checker names in registration order.
func (a *Aggregator) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, len(a.checkers))
	for i, c := range a.checkers {
		names[i] = c.Name()
	}
	return names
}

// Check runs the checker registered as name.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	c, ok := a.byName[name]
	a.mu.RUnlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrCheckerNotFound, name)
	}
	return a.run(ctx, c), nil
}

// Run executes every registered check and returns the combined report.
// An empty aggregator is healthy.
func (a *Aggregator) Run(ctx context.Context) Report {
	a.mu.RLock()
	checkers := append([]Checker(nil), a.checkers...)
	a.mu.RUnlock()

	results := make([]Result, len(checkers))
	g, gctx := errgroup.WithContext(ctx)
	if a.cfg.MaxConcurrency > 0 {
		g.SetLimit(a.cfg.MaxConcurrency)
	}
	for i, c := range checkers {
		g.Go(func() error {
			results[i] = a.run(gctx, c)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{
		Status:    StatusHealthy,
		Results:   make(map[string]Result, len(checkers)),
		Timestamp: time.Now(),
	}
	for i, c := range checkers {
		report.Results[c.Name()] = results[i]
		report.Status = Worst(report.Status, results[i].Status)
	}
	return report
}

func (a *Aggregator) run(ctx context.Context, c Checker) Result {
	start := time.Now()
	res, err := resilience.Within(ctx, a.cfg.Timeout, func(ctx context.Context) (res Result, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrCheckPanic, r)
			}
		}()
		return c.Check(ctx), nil
	})
	switch {
	case errors.Is(err, resilience.ErrTimeout):
		res = Unhealthy("check timed out", fmt.Errorf("%w: %w", ErrCheckTimeout, err))
	case err != nil:
		res = Unhealthy("check failed", err)
	}
	res.Duration = time.Since(start)
	if res.Timestamp.IsZero() {
		res.Timestamp = start
	}
	return res
}

// Checker exposes the aggregator as a single Checker named "aggregate".
func (a *Aggregator) Checker() Checker {
	return NewCheckerFunc("aggregate", func(ctx context.Context) Result {
		report := a.Run(ctx)
		details := make(map[string]any, len(report.Results))
		for name, r := range report.Results {
			details[name] = r.Status.String()
		}
		return Result{
			Status:    report.Status,
			Message:   summary(report.Status),
			Details:   details,
			Timestamp: report.Timestamp,
		}
	})
}

func summary(s Status) string {
	switch s {
	case StatusHealthy:
		return "all checks passed"
	case StatusDegraded:
		return "some checks degraded"
	default:
		return "some checks failed"
	}
}
