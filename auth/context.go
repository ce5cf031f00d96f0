package auth

import "context"

// identityKey is the context key for the authenticated identity. An
// unexported struct type keeps other packages from colliding with it.
type identityKey struct{}

// WithIdentity attaches id to the context. The middleware calls this after
// a successful Authenticate so handlers can read back who the caller is.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity, or nil
// when the request is anonymous.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// PrincipalFromContext returns the authenticated principal, or "" when the
// request is anonymous.
func PrincipalFromContext(ctx context.Context) string {
	if id := IdentityFromContext(ctx); id != nil {
		return id.Principal
	}
	return ""
}
