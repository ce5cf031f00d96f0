// Package snippets exposes the read/delete surface over stored code
// snippets. Snippet creation belongs to the ingestion pipeline and has no
// route here.
package snippets

import (
	"context"

	"github.com/snipops/snippetd/observe"
	"github.com/snipops/snippetd/shell"
)

const (
	// DefaultListLimit is used when the list request names no limit.
	DefaultListLimit = 25

	// MaxListLimit caps the list operation regardless of the request.
	MaxListLimit = 100
)

// Snippet is one stored code snippet, the subset of the document this
// surface exposes. The document id doubles as the snippet name.
type Snippet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Store is the narrow slice of the document database the module needs.
type Store interface {
	// ListSnippets returns at most limit snippets.
	ListSnippets(ctx context.Context, limit int) ([]Snippet, error)

	// GetSnippet returns one snippet by name. Returns ErrNotFound when
	// no document has that name.
	GetSnippet(ctx context.Context, name string) (Snippet, error)

	// DeleteSnippet removes one snippet by name. Returns ErrNotFound
	// when no document has that name.
	DeleteSnippet(ctx context.Context, name string) error
}

// Config configures the snippets module.
type Config struct {
	// Store is the document backend. Load fails without one.
	Store Store

	// Logger defaults to a no-op logger.
	Logger observe.Logger
}

// Module returns the registration descriptor for the snippets routes.
func Module(config Config) shell.Module {
	return shell.Module{
		Name: "snippets",
		Load: func() (shell.AttachFunc, error) {
			if config.Store == nil {
				return nil, ErrNoStore
			}
			logger := config.Logger
			if logger == nil {
				logger = observe.NopLogger()
			}
			h := &handler{
				store:  config.Store,
				logger: logger.With(observe.Field{Key: "component", Value: "snippets"}),
			}
			return func(b *shell.Binder) error {
				b.HandleFunc("GET /api/snippets", h.list)
				b.HandleFunc("GET /api/snippets/{name}", h.get)
				b.HandleFunc("DELETE /api/snippets/{name}", h.delete)
				return nil
			}, nil
		},
	}
}
