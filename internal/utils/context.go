package utils

import "context"

type CtxKey string

const (
	CtxUserID   CtxKey = "uid"
	CtxUsername CtxKey = "username"
)

// WithIdentity attaches the authenticated user to ctx.
func WithIdentity(ctx context.Context, userID, username string) context.Context {
	ctx = context.WithValue(ctx, CtxUserID, userID)
	return context.WithValue(ctx, CtxUsername, username)
}

// Identity reports the user attached by WithIdentity; ok is false for
// anonymous requests.
func Identity(ctx context.Context) (userID, username string, ok bool) {
	userID, ok = ctx.Value(CtxUserID).(string)
	username, _ = ctx.Value(CtxUsername).(string)
	return userID, username, ok && userID != ""
}
