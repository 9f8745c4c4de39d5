package services

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the per-browser session identity handed to every core
// operation by the transport layer. Handle is empty until the session has
// claimed one. The core never reads ambient session state.
type Identity struct {
	SessionID uuid.UUID
	Handle    string
}

type identityCtxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}
