// Package health probes the service's external dependencies and combines
// the outcomes into a single binary status.
//
// A Probe performs exactly one bounded, read-only operation against one
// backend and reports a Result. Probes never return errors: every failure
// mode, including missing configuration, becomes an ok=false Result so a
// broken dependency degrades the health report instead of breaking the
// request that asked for it.
//
// # Aggregation
//
// The Aggregator runs a fixed, ordered probe set and folds the results
// conjunctively — the aggregate is ok only when every probe is ok, with
// no degraded middle ground. Results are reported in probe definition
// order even when the probes run in parallel, and every probe's result
// appears in the report no matter how many failed before it:
//
//	agg := health.NewAggregator()
//	agg.Register(health.NewStorageProbe(blobs, health.StorageProbeConfig{
//	    Container: "snippet-input",
//	}))
//	agg.Register(health.NewCosmosProbe(docs, health.CosmosProbeConfig{
//	    Database:  "dev-snippet-db",
//	    Container: "code-snippets",
//	}))
//
//	report := agg.Run(ctx)
//	if !report.OK {
//	    // at least one dependency is unreachable or misconfigured
//	}
//
// Each probe is bounded by the aggregator's per-probe timeout; one that
// exceeds it is reported as failed while the rest continue.
//
// # HTTP Endpoints
//
// Two handlers expose the two cost tiers:
//
//	// Zero-I/O liveness answer, safe for tight polling.
//	mux.Handle("GET /health", health.ShallowHandler())
//
//	// Full probe pass with per-dependency diagnostics.
//	mux.Handle("GET /health_extended", health.ExtendedHandler(agg))
//
// The extended endpoint answers 200 only when the aggregate is ok and
// renders every probe's result under its own key in the response body.
package health
