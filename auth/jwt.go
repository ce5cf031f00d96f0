package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig configures the JWT authenticator. Zero values pick the usual
// bearer-token conventions.
type JWTConfig struct {
	// Issuer is matched against the iss claim. Empty skips the check.
	Issuer string

	// Audience is matched against the aud claim. Empty skips the check.
	Audience string

	// HeaderName carries the token. Defaults to "Authorization".
	HeaderName string

	// TokenPrefix sits before the token in the header. Defaults to "Bearer ".
	TokenPrefix string

	// PrincipalClaim names the claim used as the principal. Defaults to "sub".
	PrincipalClaim string
}

func (c *JWTConfig) applyDefaults() {
	if c.HeaderName == "" {
		c.HeaderName = "Authorization"
	}
	if c.TokenPrefix == "" {
		c.TokenPrefix = "Bearer "
	}
	if c.PrincipalClaim == "" {
		c.PrincipalClaim = "sub"
	}
}

// JWTAuthenticator validates HS256 bearer tokens signed with a shared secret.
type JWTAuthenticator struct {
	config JWTConfig
	secret []byte
}

// NewJWTAuthenticator creates a JWT authenticator over the shared secret.
func NewJWTAuthenticator(config JWTConfig, secret []byte) *JWTAuthenticator {
	config.applyDefaults()
	return &JWTAuthenticator{
		config: config,
		secret: secret,
	}
}

// Name returns "jwt".
func (a *JWTAuthenticator) Name() string {
	return "jwt"
}

// Supports reports whether the request carries a bearer token.
func (a *JWTAuthenticator) Supports(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get(a.config.HeaderName), a.config.TokenPrefix)
}

// Authenticate parses and verifies the bearer token, returning the identity
// carried by its claims.
func (a *JWTAuthenticator) Authenticate(r *http.Request) (*Identity, error) {
	header := r.Header.Get(a.config.HeaderName)
	if header == "" {
		return nil, ErrMissingCredentials
	}

	tokenString := strings.TrimPrefix(header, a.config.TokenPrefix)
	if tokenString == header {
		return nil, ErrMissingCredentials
	}
	tokenString = strings.TrimSpace(tokenString)

	// HS256 only. Restricting the accepted methods up front defeats
	// algorithm-confusion tokens before the key is consulted.
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if a.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.config.Issuer))
	}
	if a.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(a.config.Audience))
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	return a.identityFromClaims(claims), nil
}

// classifyTokenError maps jwt parse failures onto this package's sentinels
// so callers never import the jwt library to branch on them.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrInvalidCredentials
	}
}

func (a *JWTAuthenticator) identityFromClaims(claims jwt.MapClaims) *Identity {
	identity := &Identity{
		Method: MethodJWT,
		Claims: make(map[string]any, len(claims)),
	}
	for k, v := range claims {
		identity.Claims[k] = v
	}

	if principal, ok := claims[a.config.PrincipalClaim].(string); ok {
		identity.Principal = principal
	}
	if exp, ok := claims["exp"].(float64); ok {
		identity.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return identity
}

var _ Authenticator = (*JWTAuthenticator)(nil)
