package auth

import (
	"net/http"
	"time"
)

// Method indicates how authentication was performed.
type Method string

const (
	MethodNone      Method = "none"
	MethodKey       Method = "key"
	MethodJWT       Method = "jwt"
	MethodAnonymous Method = "anonymous"
)

// Identity represents an authenticated principal.
type Identity struct {
	// Principal is the unique identifier (key name, token subject).
	Principal string

	// Method indicates how authentication was performed.
	Method Method

	// Claims contains the raw claims from the credential, if any.
	Claims map[string]any

	// ExpiresAt is when this identity expires (zero = never).
	ExpiresAt time.Time
}

// IsAnonymous returns true if this identity carries no principal.
func (id *Identity) IsAnonymous() bool {
	return id.Method == MethodAnonymous || id.Principal == ""
}

// AnonymousIdentity creates a default anonymous identity.
func AnonymousIdentity() *Identity {
	return &Identity{
		Principal: "anonymous",
		Method:    MethodAnonymous,
		Claims:    make(map[string]any),
	}
}

// Authenticator validates request credentials and returns an identity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Authenticate returns (nil, error) for every denial; the error
//   wraps one of the package sentinels. A nil error always carries an identity.
type Authenticator interface {
	// Name returns a unique identifier for this authenticator.
	Name() string

	// Supports returns true if this authenticator can handle the request.
	Supports(r *http.Request) bool

	// Authenticate validates the request's credentials.
	Authenticate(r *http.Request) (*Identity, error)
}
