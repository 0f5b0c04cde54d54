package auth

import "context"

type ctxKey int

const (
	userIDKey ctxKey = iota
	sessionTokenKey
)

// WithSession stores the resolved session in ctx. userID 0 means anonymous.
func WithSession(ctx context.Context, token string, userID int64) context.Context {
	ctx = context.WithValue(ctx, sessionTokenKey, token)
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the authenticated user id, or 0 for anonymous requests.
func GetUserID(ctx context.Context) int64 {
	if val, ok := ctx.Value(userIDKey).(int64); ok {
		return val
	}
	return 0
}

func GetSessionToken(ctx context.Context) string {
	if val, ok := ctx.Value(sessionTokenKey).(string); ok {
		return val
	}
	return ""
}
