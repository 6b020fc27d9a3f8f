package edge

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/edgekit/pkg/cookie"
)

const requestIDHeader = "X-Request-ID"

// AddHeaders sets the given headers on every response leaving the chain.
func AddHeaders(headers map[string]string) Middleware {
	return func(ctx context.Context, _ *RequestContext, next Next) (*http.Response, error) {
		resp, err := next(ctx)
		if err != nil {
			return nil, err
		}
		for name, value := range headers {
			resp.Header.Set(name, value)
		}
		return resp, nil
	}
}

// RemoveHeaders strips the given headers from every response leaving the
// chain.
func RemoveHeaders(names ...string) Middleware {
	return func(ctx context.Context, _ *RequestContext, next Next) (*http.Response, error) {
		resp, err := next(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			resp.Header.Del(name)
		}
		return resp, nil
	}
}

// SetCookie queues a cookie on every request passing through.
func SetCookie(name, value string, opts ...cookie.Option) Middleware {
	return func(ctx context.Context, rc *RequestContext, next Next) (*http.Response, error) {
		rc.Cookies().Set(name, value, opts...)
		return next(ctx)
	}
}

// DeleteCookie queues deletion of a cookie on every request passing through.
func DeleteCookie(name string) Middleware {
	return func(ctx context.Context, rc *RequestContext, next Next) (*http.Response, error) {
		rc.Cookies().Delete(name)
		return next(ctx)
	}
}

// RequestID propagates X-Request-ID from the inbound request to the origin
// and the response, generating one when the client sent none.
func RequestID() Middleware {
	return func(ctx context.Context, rc *RequestContext, next Next) (*http.Response, error) {
		id := rc.Request().Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			rc.Request().Header.Set(requestIDHeader, id)
		}

		resp, err := next(ctx)
		if err != nil {
			return nil, err
		}
		resp.Header.Set(requestIDHeader, id)
		return resp, nil
	}
}

// Logging logs one line per dispatched request with method, path, status,
// duration and client IP.
func Logging(log *slog.Logger) Middleware {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx context.Context, rc *RequestContext, next Next) (*http.Response, error) {
		start := time.Now()
		resp, err := next(ctx)
		attrs := []any{
			slog.String("method", rc.Request().Method),
			slog.String("path", rc.Request().URL.Path),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", rc.ClientIP()),
		}

		if err != nil {
			log.ErrorContext(ctx, "edge request failed", append(attrs, slog.Any("error", err))...)
			return nil, err
		}
		log.InfoContext(ctx, "edge request", append(attrs, slog.Int("status", resp.StatusCode))...)
		return resp, nil
	}
}
