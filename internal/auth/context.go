package auth

import (
	"context"

	"github.com/jedyapps/dealdesk/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity adds the authenticated identity to the context
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// FromContext extracts the authenticated identity from the context
func FromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*domain.Identity)
	return identity, ok
}
