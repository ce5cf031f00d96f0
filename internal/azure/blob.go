package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/snipops/snippetd/health"
	"github.com/snipops/snippetd/internal/modules/ingestion"
)

// BlobStore adapts the Azure blob client to the operations the storage
// probe and the ingestion module consume.
type BlobStore struct {
	client *azblob.Client
}

// NewBlobStore connects to blob storage with a connection string.
func NewBlobStore(connectionString string) (*BlobStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("azure: connect blob storage: %w", err)
	}
	return &BlobStore{client: client}, nil
}

// AccountURL returns the blob service endpoint.
func (s *BlobStore) AccountURL() string {
	return s.client.URL()
}

// ContainerProperties fetches container metadata by name. A nil error
// proves the container exists and the credential can read it.
func (s *BlobStore) ContainerProperties(ctx context.Context, container string) error {
	_, err := s.client.ServiceClient().NewContainerClient(container).GetProperties(ctx, nil)
	if err != nil {
		return fmt.Errorf("azure: container properties %s: %w", container, err)
	}
	return nil
}

// ListBlobNames returns the names of every blob in the container.
func (s *BlobStore) ListBlobNames(ctx context.Context, container string) ([]string, error) {
	var names []string
	pager := s.client.NewListBlobsFlatPager(container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("azure: list blobs %s: %w", container, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

var (
	_ health.BlobService   = (*BlobStore)(nil)
	_ ingestion.BlobLister = (*BlobStore)(nil)
)
