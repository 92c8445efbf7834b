package user

import "context"

type contextKey string

const userIDKey contextKey = "userID"

// ContextWithID stores the authenticated user's id in ctx.
func ContextWithID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// IDFromContext returns the authenticated user's id stored by the auth middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
