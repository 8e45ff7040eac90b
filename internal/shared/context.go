package shared

import "context"

type identityContextKey struct{}

// Identity describes the authenticated operator attached to a request.
type Identity struct {
	EmployeeID string
	Name       string
	Rank       string
	Admin      bool
}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
