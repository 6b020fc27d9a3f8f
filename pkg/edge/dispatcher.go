package edge

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"net/http"

	"github.com/dmitrymomot/edgekit/pkg/clientip"
	"github.com/dmitrymomot/edgekit/pkg/cookie"
)

// Dispatcher runs a middleware chain over inbound requests and fetches the
// final request against the origin.
type Dispatcher struct {
	chain    []Middleware
	fetcher  Fetcher
	geo      GeoResolver
	codec    *cookie.Codec
	platform string
	log      *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithFetcher sets the terminal fetcher.
func WithFetcher(f Fetcher) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.fetcher = f
		}
	}
}

// WithGeoResolver sets the geolocation resolver.
func WithGeoResolver(g GeoResolver) Option {
	return func(d *Dispatcher) {
		if g != nil {
			d.geo = g
		}
	}
}

// WithCookieCodec equips request jars with signing and encryption support.
func WithCookieCodec(c *cookie.Codec) Option {
	return func(d *Dispatcher) {
		d.codec = c
	}
}

// WithPlatform names the runtime exposed via RequestContext.Platform.
func WithPlatform(name string) Option {
	return func(d *Dispatcher) {
		d.platform = name
	}
}

// WithLogger sets the logger used for dispatch failures.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// New creates a dispatcher over the given chain. Without options it fetches
// through a default HTTP client and resolves geolocation from CDN headers.
func New(chain []Middleware, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		chain:   chain,
		fetcher: NewClientFetcher(nil),
		geo:     HeaderGeoResolver{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute runs the chain for one request and returns the response that
// leaves it: a middleware's own, a redirect, or the origin's. Cookies queued
// on the request jar are appended to that response's headers.
func (d *Dispatcher) Execute(ctx context.Context, r *http.Request) (*http.Response, error) {
	if r == nil {
		return nil, ErrNilRequest
	}

	rc := d.newRequestContext(r)
	resp, err := runChain(ctx, rc, d.chain, 0, func(ctx context.Context) (*http.Response, error) {
		out, err := rc.outboundRequest(ctx)
		if err != nil {
			return nil, err
		}
		return d.fetcher.Fetch(ctx, out)
	})
	if err != nil {
		return nil, err
	}

	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	rc.jar.Apply(resp.Header)
	return resp, nil
}

// Handler adapts the dispatcher to net/http. Dispatch failures surface as
// 502 Bad Gateway.
func (d *Dispatcher) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := d.Execute(r.Context(), r)
		if err != nil {
			d.log.ErrorContext(r.Context(), "edge dispatch failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()

		maps.Copy(w.Header(), resp.Header)
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)
	})
}

func (d *Dispatcher) newRequestContext(r *http.Request) *RequestContext {
	jar := cookie.NewJar(r)
	if d.codec != nil {
		jar = d.codec.NewJar(r)
	}
	return &RequestContext{
		req:      r,
		jar:      jar,
		clientIP: clientip.GetIP(r),
		platform: d.platform,
		geo:      d.geo.Resolve(r),
	}
}
