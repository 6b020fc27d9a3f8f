package edge

import (
	"context"
	"net/http"
)

// Next continues the middleware chain. It is memoized per middleware, so
// calling it more than once returns the same response without re-running
// anything downstream.
type Next func(ctx context.Context) (*http.Response, error)

// Middleware processes a request at the edge. It may return a response of
// its own, call next and pass the downstream response through (modified or
// not), or return nil to defer to the rest of the chain.
type Middleware func(ctx context.Context, rc *RequestContext, next Next) (*http.Response, error)

// Compose folds a chain into a single middleware. The folded chain behaves
// exactly as if its members were inlined: same memoization, same redirect
// short-circuiting, same fall-through into the outer continuation.
func Compose(chain ...Middleware) Middleware {
	return func(ctx context.Context, rc *RequestContext, next Next) (*http.Response, error) {
		return runChain(ctx, rc, chain, 0, next)
	}
}

// runChain executes chain[index:] with terminal as the continuation past the
// last middleware. A pending redirect wins over everything downstream.
func runChain(ctx context.Context, rc *RequestContext, chain []Middleware, index int, terminal Next) (*http.Response, error) {
	if resp := rc.redirectResponse(); resp != nil {
		return resp, nil
	}
	if index >= len(chain) {
		resp, err := terminal(ctx)
		if err != nil {
			return nil, err
		}
		ensureHeader(resp)
		return resp, nil
	}

	next := memoizeNext(func(ctx context.Context) (*http.Response, error) {
		return runChain(ctx, rc, chain, index+1, terminal)
	})

	resp, err := chain[index](ctx, rc, next)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		// The middleware declined to answer; whatever is downstream decides.
		return next(ctx)
	}
	ensureHeader(resp)
	return resp, nil
}

// ensureHeader backfills a nil header map so upstream middlewares can mutate
// response headers without a nil check.
func ensureHeader(resp *http.Response) {
	if resp != nil && resp.Header == nil {
		resp.Header = make(http.Header)
	}
}

func memoizeNext(fn Next) Next {
	var (
		called bool
		resp   *http.Response
		err    error
	)
	return func(ctx context.Context) (*http.Response, error) {
		if !called {
			called = true
			resp, err = fn(ctx)
		}
		return resp, err
	}
}
