package auth

import "context"

// Identity is the verified caller of a protected request.
type Identity struct {
	Subject string
	Email   string
	IsAdmin bool
}

// IdentityFromClaims converts verified claims into an Identity.
func IdentityFromClaims(c *Claims) Identity {
	return Identity{Subject: c.Subject, Email: c.Email, IsAdmin: c.IsAdmin}
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
