package identityctx

import (
	"context"

	"github.com/nkiryanov/insightboard/internal/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Create a new context with the token identity
func New(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Extract the token identity from the context
func FromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}
