package health

import "errors"

var (
	// ErrProbeTimeout indicates a probe exceeded its per-probe deadline.
	ErrProbeTimeout = errors.New("health: probe timed out")

	// ErrProbePanic indicates a probe panicked. The panic is converted
	// into a failing result, never propagated.
	ErrProbePanic = errors.New("health: probe panicked")
)
