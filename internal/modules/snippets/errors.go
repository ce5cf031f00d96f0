package snippets

import "errors"

var (
	// ErrNotFound indicates no snippet exists under the requested name.
	// Store implementations return it so the handler can answer 404.
	ErrNotFound = errors.New("snippets: not found")

	// ErrNoStore indicates the module was configured without a backend.
	ErrNoStore = errors.New("snippets: store is not configured")
)
