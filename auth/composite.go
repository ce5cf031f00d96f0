package auth

import "net/http"

// CompositeAuthenticator tries multiple authenticators in sequence and
// returns the first success. Authenticators that do not support the request
// are skipped.
type CompositeAuthenticator struct {
	authenticators []Authenticator
}

// NewCompositeAuthenticator creates a composite authenticator.
func NewCompositeAuthenticator(auths ...Authenticator) *CompositeAuthenticator {
	return &CompositeAuthenticator{authenticators: auths}
}

// Name returns "composite".
func (c *CompositeAuthenticator) Name() string {
	return "composite"
}

// Supports returns true if any authenticator supports the request.
func (c *CompositeAuthenticator) Supports(r *http.Request) bool {
	for _, a := range c.authenticators {
		if a.Supports(r) {
			return true
		}
	}
	return false
}

// Authenticate tries each supporting authenticator in order.
func (c *CompositeAuthenticator) Authenticate(r *http.Request) (*Identity, error) {
	var lastErr error

	for _, a := range c.authenticators {
		if !a.Supports(r) {
			continue
		}

		identity, err := a.Authenticate(r)
		if err == nil {
			return identity, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrMissingCredentials
}

// Ensure CompositeAuthenticator implements Authenticator
var _ Authenticator = (*CompositeAuthenticator)(nil)
