package clientip

import (
	"context"
)

// clientIPContextKey keys the resolved address in a request context.
type clientIPContextKey struct{}

// SetIPToContext stores the resolved client address in the context.
func SetIPToContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// GetIPFromContext returns the address stored by SetIPToContext, or "".
func GetIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}
