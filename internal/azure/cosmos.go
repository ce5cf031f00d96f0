package azure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/snipops/snippetd/health"
	"github.com/snipops/snippetd/internal/modules/query"
	"github.com/snipops/snippetd/internal/modules/snippets"
)

// CosmosStore adapts one Cosmos DB container to the operations the cosmos
// probe and the snippet modules consume. Snippets are stored with the
// snippet name as both document id and partition key.
type CosmosStore struct {
	database  string
	container string
	client    *azcosmos.ContainerClient
}

// NewCosmosStore connects to one Cosmos container with a connection
// string. Obtaining the container handle performs no I/O; the first
// operation does.
func NewCosmosStore(connectionString, database, container string) (*CosmosStore, error) {
	client, err := azcosmos.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("azure: connect cosmos: %w", err)
	}
	cc, err := client.NewContainer(database, container)
	if err != nil {
		return nil, fmt.Errorf("azure: container handle %s/%s: %w", database, container, err)
	}
	return &CosmosStore{database: database, container: container, client: cc}, nil
}

// QueryItemIDs proves connectivity and authorization with one bounded id
// query.
func (s *CosmosStore) QueryItemIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 1
	}

	// An empty partition key runs the query across partitions.
	pager := s.client.NewQueryItemsPager(
		fmt.Sprintf("SELECT TOP %d c.id FROM c", limit),
		azcosmos.PartitionKey{},
		nil,
	)

	var ids []string
	// The query is TOP-bounded, so one page carries everything.
	if pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("azure: query item ids: %w", err)
		}
		for _, raw := range page.Items {
			var row struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(raw, &row); err != nil {
				return nil, fmt.Errorf("azure: decode id row: %w", err)
			}
			ids = append(ids, row.ID)
		}
	}
	return ids, nil
}

// ListSnippets returns at most limit snippets.
func (s *CosmosStore) ListSnippets(ctx context.Context, limit int) ([]snippets.Snippet, error) {
	stmt := fmt.Sprintf("SELECT TOP %d c.id, c.name, c.code, c.description FROM c", limit)
	return s.querySnippets(ctx, stmt, nil)
}

// SearchSnippets returns at most top snippets whose name or code contains
// term, case-insensitively.
func (s *CosmosStore) SearchSnippets(ctx context.Context, term string, top int) ([]snippets.Snippet, error) {
	stmt := fmt.Sprintf(
		"SELECT TOP %d c.id, c.name, c.code, c.description FROM c WHERE CONTAINS(c.name, @term, true) OR CONTAINS(c.code, @term, true)",
		top,
	)
	opts := &azcosmos.QueryOptions{
		QueryParameters: []azcosmos.QueryParameter{{Name: "@term", Value: term}},
	}
	return s.querySnippets(ctx, stmt, opts)
}

// GetSnippet reads one snippet by name with a point read.
func (s *CosmosStore) GetSnippet(ctx context.Context, name string) (snippets.Snippet, error) {
	resp, err := s.client.ReadItem(ctx, azcosmos.NewPartitionKeyString(name), name, nil)
	if err != nil {
		return snippets.Snippet{}, classify("read snippet "+name, err)
	}

	var sn snippets.Snippet
	if err := json.Unmarshal(resp.Value, &sn); err != nil {
		return snippets.Snippet{}, fmt.Errorf("azure: decode snippet %s: %w", name, err)
	}
	return sn, nil
}

// DeleteSnippet removes one snippet by name.
func (s *CosmosStore) DeleteSnippet(ctx context.Context, name string) error {
	_, err := s.client.DeleteItem(ctx, azcosmos.NewPartitionKeyString(name), name, nil)
	return classify("delete snippet "+name, err)
}

func (s *CosmosStore) querySnippets(ctx context.Context, stmt string, opts *azcosmos.QueryOptions) ([]snippets.Snippet, error) {
	pager := s.client.NewQueryItemsPager(stmt, azcosmos.PartitionKey{}, opts)

	var out []snippets.Snippet
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("azure: query snippets: %w", err)
		}
		for _, raw := range page.Items {
			var sn snippets.Snippet
			if err := json.Unmarshal(raw, &sn); err != nil {
				return nil, fmt.Errorf("azure: decode snippet: %w", err)
			}
			out = append(out, sn)
		}
	}
	return out, nil
}

// classify maps Azure 404 responses onto the domain's not-found sentinel
// and wraps everything else with the failed operation.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
		return snippets.ErrNotFound
	}
	return fmt.Errorf("azure: %s: %w", op, err)
}

var (
	_ health.DocumentQuerier = (*CosmosStore)(nil)
	_ snippets.Store         = (*CosmosStore)(nil)
	_ query.Searcher         = (*CosmosStore)(nil)
)
