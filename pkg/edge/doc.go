// Package edge runs request middleware chains at the HTTP edge, in front of
// an origin.
//
// A Middleware receives the request context and an explicit next
// continuation. Calling next runs the rest of the chain, ending in a fetch
// of the (possibly rewritten) request against the origin, and hands the
// response back so the middleware can inspect or modify it on the way out.
// The continuation is memoized, so downstream runs at most once no matter
// how the middleware combines calling next with returning a response.
//
// Middlewares short-circuit by returning a response themselves or by
// marking a redirect on the context; a pending redirect skips everything
// downstream, the origin included. Rewrites take effect only at the end of
// the chain, when the terminal fetch resolves the final target URL.
//
//	d := edge.New([]edge.Middleware{
//		edge.RequestID(),
//		edge.Logging(log),
//		auth,
//	}, edge.WithFetcher(fetcher))
//
//	resp, err := d.Execute(ctx, r)
//
// Compose folds several middlewares into one with identical semantics, so
// grouped chains behave exactly like flat ones. Cookies queued on the
// context's jar are applied to whichever response leaves the chain.
package edge
