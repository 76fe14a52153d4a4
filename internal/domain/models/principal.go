package models

import (
	"context"

	"github.com/taskforge/taskforge/pkg/constants"
)

// Principal is the authenticated identity established for the lifetime of a
// single request. It is created once by the authentication gate, read-only to
// downstream handlers, and discarded when the request ends; nothing about it
// persists across requests except the token re-presented by the client.
type Principal struct {
	Username string
}

// PrincipalFromContext returns the principal attached to ctx, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(constants.ContextKeyPrincipal).(*Principal)
	return p, ok
}

// ContextWithPrincipal attaches p to ctx.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, constants.ContextKeyPrincipal, p)
}
