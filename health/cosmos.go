package health

import "context"

// DocumentQuerier is the narrow slice of the document-database client the
// cosmos probe needs: one bounded query against the configured container.
type DocumentQuerier interface {
	// QueryItemIDs runs a top-N query returning at most limit item IDs.
	QueryItemIDs(ctx context.Context, limit int) ([]string, error)
}

// CosmosProbeConfig configures the document-database probe.
type CosmosProbeConfig struct {
	// Database is the database name the probe reports and queries.
	Database string

	// Container is the container the bounded query runs against.
	Container string
}

// CosmosProbe verifies document-database connectivity with a single
// top-1 query.
type CosmosProbe struct {
	config CosmosProbeConfig
	client DocumentQuerier
}

// NewCosmosProbe creates a cosmos probe. A nil client is allowed: the
// probe then reports the missing connection string as a failing result.
func NewCosmosProbe(client DocumentQuerier, config ...CosmosProbeConfig) *CosmosProbe {
	cfg := CosmosProbeConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	return &CosmosProbe{config: cfg, client: client}
}

// Name returns the reporting key for this probe.
func (p *CosmosProbe) Name() string {
	return "cosmos"
}

// Check runs one bounded query against the configured container. Missing
// configuration is detected before any I/O and reported as a failure; the
// name fields are checked before the client so a half-configured backend
// names its actual gap.
func (p *CosmosProbe) Check(ctx context.Context) Result {
	switch {
	case p.config.Database == "":
		return Fail("cosmos database name is not configured")
	case p.config.Container == "":
		return Fail("cosmos container name is not configured")
	case p.client == nil:
		return Fail("cosmos connection string is not configured")
	}

	if _, err := p.client.QueryItemIDs(ctx, 1); err != nil {
		return Fail(err.Error())
	}

	return Pass().WithDetails(map[string]any{
		"database":  p.config.Database,
		"container": p.config.Container,
	})
}

var _ Probe = (*CosmosProbe)(nil)
