package auth

import (
	"context"

	"github.com/google/uuid"
)

type businessContextKey struct{}

// ContextWithBusiness attaches the authenticated business id to the context.
func ContextWithBusiness(ctx context.Context, businessID uuid.UUID) context.Context {
	return context.WithValue(ctx, businessContextKey{}, businessID)
}

// BusinessFromContext returns the authenticated business id, if any.
func BusinessFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}

	id, ok := ctx.Value(businessContextKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}

	return id, true
}
