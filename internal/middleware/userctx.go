package middleware

import "context"

type (
	userKey          struct{}
	rejectedTokenKey struct{}
)

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userKey{}, uid)
}

// UserID returns the id attached by the auth guard, if any.
func UserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userKey{}).(string)
	return uid, ok && uid != ""
}

// TokenRejected reports whether Optional saw a bearer token that failed verification.
func TokenRejected(ctx context.Context) bool {
	v, _ := ctx.Value(rejectedTokenKey{}).(bool)
	return v
}

func withRejectedToken(ctx context.Context) context.Context {
	return context.WithValue(ctx, rejectedTokenKey{}, true)
}
