package health

import "context"

// BlobService is the narrow slice of the blob-storage client the storage
// probe needs.
type BlobService interface {
	// AccountURL returns the service endpoint the client talks to.
	AccountURL() string

	// ContainerProperties fetches container metadata by name. A nil
	// error proves the container exists and the credential can read it.
	ContainerProperties(ctx context.Context, container string) error
}

// StorageProbeConfig configures the storage dependency probe.
type StorageProbeConfig struct {
	// Container is the blob container whose properties prove access.
	Container string
}

// StorageProbe verifies blob-storage connectivity with a single container
// metadata read.
type StorageProbe struct {
	config StorageProbeConfig
	client BlobService
}

// NewStorageProbe creates a storage probe. A nil client is allowed: the
// probe then reports the missing connection string as a failing result,
// so absent configuration degrades the health status instead of breaking
// startup.
func NewStorageProbe(client BlobService, config ...StorageProbeConfig) *StorageProbe {
	cfg := StorageProbeConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	return &StorageProbe{config: cfg, client: client}
}

// Name returns the reporting key for this probe.
func (p *StorageProbe) Name() string {
	return "storage"
}

// Check fetches the configured container's properties.
func (p *StorageProbe) Check(ctx context.Context) Result {
	if p.client == nil {
		return Fail("storage connection string is not configured")
	}
	if p.config.Container == "" {
		return Fail("storage container is not configured")
	}

	if err := p.client.ContainerProperties(ctx, p.config.Container); err != nil {
		return Fail(err.Error())
	}

	return Pass().WithDetails(map[string]any{
		"container":   p.config.Container,
		"account_url": p.client.AccountURL(),
	})
}

var _ Probe = (*StorageProbe)(nil)
