package csrf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrymomot/edgekit/pkg/edge"
	"github.com/dmitrymomot/edgekit/pkg/session"
)

// Protect enforces CSRF tokens on state-changing requests at the edge. Safe
// methods (GET, HEAD, OPTIONS) pass through. Others must carry a token in
// the configured header or query parameter that verifies against the
// request's session; failures answer 403 without touching the origin.
//
// The form body is deliberately not inspected: the edge forwards the body
// downstream and must not consume it.
func Protect(guard *Guard, sessions session.Store) edge.Middleware {
	return func(ctx context.Context, rc *edge.RequestContext, next edge.Next) (*http.Response, error) {
		if !guard.Enabled() || safeMethod(rc.Request().Method) {
			return next(ctx)
		}

		token := rc.Request().Header.Get(guard.cfg.HeaderName)
		if token == "" {
			token = rc.Request().URL.Query().Get(guard.cfg.QueryParam)
		}
		if token == "" {
			return forbidden(rc.Request(), "CSRF token missing"), nil
		}

		sess, err := sessions.GetSession(rc.Request())
		if err != nil {
			return nil, err
		}
		if !guard.Verify(token, sess.ID()) {
			return forbidden(rc.Request(), "Invalid CSRF token"), nil
		}
		return next(ctx)
	}
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func forbidden(r *http.Request, message string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "text/plain; charset=utf-8")
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", http.StatusForbidden, http.StatusText(http.StatusForbidden)),
		StatusCode:    http.StatusForbidden,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(message)),
		ContentLength: int64(len(message)),
		Request:       r,
	}
}
