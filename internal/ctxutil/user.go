// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// UserKey is the context key for the signed-in user's ID.
type UserKey struct{}

// WithUserID returns a context carrying the signed-in user's ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserKey{}, userID)
}

// UserFromContext returns the user ID from context, or empty string if not set.
func UserFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(UserKey{}).(string); ok {
		return v
	}
	return ""
}
