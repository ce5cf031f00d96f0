package health

import (
	"context"
	"time"
)

// Result is the outcome of one dependency probe. The zero value reports
// failure, so a result that was never filled in counts as unhealthy.
type Result struct {
	// OK reports whether the dependency answered the probe.
	OK bool

	// Details carries diagnostic metadata such as the resolved container
	// or database name. Populated on success.
	Details map[string]any

	// Err is the captured failure message. Empty when OK.
	Err string

	// Duration is how long the probe took.
	Duration time.Duration
}

// Pass creates a passing result.
func Pass() Result {
	return Result{OK: true}
}

// Fail creates a failing result with a captured message.
func Fail(message string) Result {
	return Result{Err: message}
}

// WithDetails adds diagnostic details to a result.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// Probe is one bounded read-only check against an external dependency.
//
// Contract:
// - Check performs exactly one lightweight operation sufficient to prove
//   connectivity and authorization. It must not mutate the dependency and
//   must not scan unboundedly.
// - Every failure, including missing configuration, becomes an ok=false
//   Result. Check never returns an error and never panics on purpose;
//   the Aggregator contains accidental panics anyway.
type Probe interface {
	// Name returns the key under which this probe's result is reported.
	Name() string

	// Check performs the probe.
	Check(ctx context.Context) Result
}

// ProbeFunc is an adapter to allow ordinary functions to be used as Probes.
type ProbeFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewProbeFunc creates a new ProbeFunc.
func NewProbeFunc(name string, fn func(context.Context) Result) *ProbeFunc {
	return &ProbeFunc{name: name, fn: fn}
}

// Name returns the name of this probe.
func (f *ProbeFunc) Name() string {
	return f.name
}

// Check performs the probe.
func (f *ProbeFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}
