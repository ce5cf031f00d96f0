package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
)

// DefaultKeyHeader is the header checked for a function key.
const DefaultKeyHeader = "x-functions-key"

// KeyConfig configures the key authenticator.
type KeyConfig struct {
	// Header is the request header containing the key.
	// Default: "x-functions-key"
	Header string
}

// KeyAuthenticator validates shared keys presented in a request header.
// Keys are stored as SHA-256 hashes and compared in constant time.
type KeyAuthenticator struct {
	config KeyConfig
	keys   map[string]string // key hash -> principal
}

// NewKeyAuthenticator creates a key authenticator. keys maps principal names
// to their plaintext keys; only the hashes are retained.
func NewKeyAuthenticator(config KeyConfig, keys map[string]string) *KeyAuthenticator {
	if config.Header == "" {
		config.Header = DefaultKeyHeader
	}

	hashed := make(map[string]string, len(keys))
	for principal, key := range keys {
		hashed[HashKey(key)] = principal
	}

	return &KeyAuthenticator{
		config: config,
		keys:   hashed,
	}
}

// Name returns "key".
func (a *KeyAuthenticator) Name() string {
	return "key"
}

// Supports returns true if the request carries the key header.
func (a *KeyAuthenticator) Supports(r *http.Request) bool {
	return r.Header.Get(a.config.Header) != ""
}

// Authenticate validates the presented key.
func (a *KeyAuthenticator) Authenticate(r *http.Request) (*Identity, error) {
	key := strings.TrimSpace(r.Header.Get(a.config.Header))
	if key == "" {
		return nil, ErrMissingCredentials
	}

	hash := HashKey(key)
	for storedHash, principal := range a.keys {
		if subtle.ConstantTimeCompare([]byte(hash), []byte(storedHash)) == 1 {
			return &Identity{
				Principal: principal,
				Method:    MethodKey,
				Claims:    make(map[string]any),
			}, nil
		}
	}

	return nil, ErrInvalidCredentials
}

// HashKey hashes a key using SHA-256 for storage and comparison.
func HashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// Ensure KeyAuthenticator implements Authenticator
var _ Authenticator = (*KeyAuthenticator)(nil)
