package health

import (
	"context"
	"time"
)

// Status is a component's health. Larger values are worse.
type Status int

const (
	StatusHealthy Status = iota
	StatusDegraded
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// MarshalText encodes s by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Worst returns the worse of a and b.
func Worst(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}

// Result is the outcome of one check.
type Result struct {
	Status  Status
	Message string

	// Details carries counters such as cache entries or probe failures.
	Details map[string]any

	Duration  time.Duration
	Timestamp time.Time
	Error     error
}

// Healthy returns a healthy result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message, Timestamp: time.Now()}
}

// Degraded returns a degraded result. The component still serves requests.
func Degraded(message string) Result {
	return Result{Status: StatusDegraded, Message: message, Timestamp: time.Now()}
}

// Unhealthy returns an unhealthy result caused by err.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Error: err, Timestamp: time.Now()}
}

// WithDetails returns r with details attached.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// Checker checks one component.
//
// Contract:
//   - Concurrency: Check may be called concurrently with itself.
//   - Context: Check should return promptly once ctx ends.
//   - Errors: failures are reported in the Result, never by panicking.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckerFunc is a named function used as a Checker.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc creates a Checker called name that runs fn.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

func (f *CheckerFunc) Name() string { return f.name }

func (f *CheckerFunc) Check(ctx context.Context) Result { return f.fn(ctx) }

var _ Checker = (*CheckerFunc)(nil)
