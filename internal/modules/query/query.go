// Package query exposes bounded keyword search over stored snippets.
// Semantic search over embeddings belongs to the excluded AI pipeline;
// this surface matches literal substrings only.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/snipops/snippetd/internal/modules/respond"
	"github.com/snipops/snippetd/internal/modules/snippets"
	"github.com/snipops/snippetd/observe"
	"github.com/snipops/snippetd/shell"
)

const (
	// DefaultTop is used when the request names no result bound.
	DefaultTop = 5

	// MaxTop caps the result bound regardless of the request.
	MaxTop = 20

	// maxBodyBytes bounds the request body read.
	maxBodyBytes = 1 << 20
)

// ErrNoSearcher indicates the module was configured without a backend.
var ErrNoSearcher = errors.New("query: searcher is not configured")

// Request is the search request body.
type Request struct {
	Query string `json:"query"`
	Top   int    `json:"top"`
}

// Response is the search response body.
type Response struct {
	Results []snippets.Snippet `json:"results"`
	Count   int                `json:"count"`
}

// Searcher is the narrow slice of the document database the module needs.
type Searcher interface {
	// SearchSnippets returns at most top snippets matching term.
	SearchSnippets(ctx context.Context, term string, top int) ([]snippets.Snippet, error)
}

// Config configures the query module.
type Config struct {
	// Searcher is the search backend. Load fails without one.
	Searcher Searcher

	// Logger defaults to a no-op logger.
	Logger observe.Logger
}

// Module returns the registration descriptor for the query route.
func Module(config Config) shell.Module {
	return shell.Module{
		Name: "query",
		Load: func() (shell.AttachFunc, error) {
			if config.Searcher == nil {
				return nil, ErrNoSearcher
			}
			logger := config.Logger
			if logger == nil {
				logger = observe.NopLogger()
			}
			h := &handler{
				searcher: config.Searcher,
				logger:   logger.With(observe.Field{Key: "component", Value: "query"}),
			}
			return func(b *shell.Binder) error {
				b.HandleFunc("POST /api/query", h.search)
				return nil
			}, nil
		},
	}
}

type handler struct {
	searcher Searcher
	logger   observe.Logger
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "request body must be JSON with a query field")
		return
	}

	term := strings.TrimSpace(req.Query)
	if term == "" {
		respond.Error(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	top := req.Top
	if top <= 0 {
		top = DefaultTop
	}
	if top > MaxTop {
		top = MaxTop
	}

	results, err := h.searcher.SearchSnippets(r.Context(), term, top)
	if err != nil {
		h.logger.Error(r.Context(), "snippet search failed",
			observe.Field{Key: "term", Value: term},
			observe.Field{Key: "error", Value: err.Error()},
		)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []snippets.Snippet{}
	}

	respond.JSON(w, http.StatusOK, Response{Results: results, Count: len(results)})
}
