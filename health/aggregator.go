package health

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// AggregatorConfig configures the health aggregator.
type AggregatorConfig struct {
	// ProbeTimeout bounds each probe individually. A probe that exceeds
	// it is reported as failed while the others continue.
	// Default: 5 seconds
	ProbeTimeout time.Duration

	// Parallel runs probes concurrently when true. Results keep probe
	// definition order either way.
	// Default: true
	Parallel bool
}

// ProbeResult pairs a probe's name with its outcome.
type ProbeResult struct {
	Name string
	Result
}

// Report is the aggregated outcome of one probe pass.
type Report struct {
	// OK is true iff every probe passed. An empty probe set passes.
	OK bool

	// Results holds one entry per probe in definition order, regardless
	// of completion order. Every probe appears even when earlier ones
	// failed.
	Results []ProbeResult
}

// Status renders the binary aggregate status.
func (r Report) Status() string {
	if r.OK {
		return "ok"
	}
	return "error"
}

// Aggregator runs a fixed, ordered set of dependency probes and combines
// their results conjunctively: the aggregate is ok only when every probe
// is ok. There is no degraded third state.
//
// Contract:
// - Concurrency: Register is for bootstrap only and is not safe to call
//   concurrently with Run. Once the probe set is complete, Run is safe
//   for concurrent use; probes and results share no mutable state.
// - Context: Run derives a per-probe deadline from ctx; cancelling ctx
//   fails the probes still in flight.
// - Errors: probe failures, timeouts, and panics all surface as ok=false
//   results inside the Report. Run itself cannot fail.
type Aggregator struct {
	config AggregatorConfig
	probes []Probe
}

// NewAggregator creates a new health aggregator.
func NewAggregator(config ...AggregatorConfig) *Aggregator {
	cfg := AggregatorConfig{
		ProbeTimeout: 5 * time.Second,
		Parallel:     true,
	}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.ProbeTimeout <= 0 {
			cfg.ProbeTimeout = 5 * time.Second
		}
	}

	return &Aggregator{config: cfg}
}

// Register appends a probe. Registration order is reporting order.
func (a *Aggregator) Register(p Probe) {
	a.probes = append(a.probes, p)
}

// ProbeNames returns the registered probe names in definition order.
func (a *Aggregator) ProbeNames() []string {
	names := make([]string, len(a.probes))
	for i, p := range a.probes {
		names[i] = p.Name()
	}
	return names
}

// Run executes every probe and aggregates the results. Each probe writes
// into its own slot, so the report order matches definition order whether
// the probes ran sequentially or in parallel.
func (a *Aggregator) Run(ctx context.Context) Report {
	results := make([]ProbeResult, len(a.probes))

	if a.config.Parallel {
		var wg sync.WaitGroup
		for i, p := range a.probes {
			wg.Add(1)
			go func(i int, p Probe) {
				defer wg.Done()
				results[i] = ProbeResult{Name: p.Name(), Result: a.runProbe(ctx, p)}
			}(i, p)
		}
		wg.Wait()
	} else {
		for i, p := range a.probes {
			results[i] = ProbeResult{Name: p.Name(), Result: a.runProbe(ctx, p)}
		}
	}

	ok := true
	for _, r := range results {
		if !r.OK {
			ok = false
		}
	}
	return Report{OK: ok, Results: results}
}

// runProbe bounds one probe with the per-probe timeout and contains
// panics, converting both into failing results.
func (a *Aggregator) runProbe(ctx context.Context, p Probe) Result {
	ctx, cancel := context.WithTimeout(ctx, a.config.ProbeTimeout)
	defer cancel()

	start := time.Now()
	resultCh := make(chan Result, 1)

	go func() {
		defer func() {
			if v := recover(); v != nil {
				resultCh <- Fail(fmt.Sprintf("%v: %v", ErrProbePanic, v))
			}
		}()
		resultCh <- p.Check(ctx)
	}()

	select {
	case result := <-resultCh:
		result.Duration = time.Since(start)
		return result
	case <-ctx.Done():
		result := Fail(ErrProbeTimeout.Error())
		result.Duration = time.Since(start)
		return result
	}
}
