package edge

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// Fetcher performs the terminal fetch at the end of a middleware chain.
type Fetcher interface {
	Fetch(ctx context.Context, req *http.Request) (*http.Response, error)
}

// ClientFetcher fetches through an http.Client. Redirects from the origin
// are not followed; they pass through to the client untouched.
type ClientFetcher struct {
	client *http.Client
}

// NewClientFetcher wraps the given client, or a default one with a 30s
// timeout when nil.
func NewClientFetcher(client *http.Client) *ClientFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	// Origin redirects belong to the client, not to the edge.
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &ClientFetcher{client: client}
}

func (f *ClientFetcher) Fetch(ctx context.Context, req *http.Request) (*http.Response, error) {
	return f.client.Do(req.WithContext(ctx))
}

// outboundRequest clones the inbound request into one suitable for a client
// fetch, absolutizing the URL and applying any pending rewrite.
func (rc *RequestContext) outboundRequest(ctx context.Context) (*http.Request, error) {
	out := rc.req.Clone(ctx)
	out.RequestURI = ""

	if out.URL.Scheme == "" {
		out.URL.Scheme = "http"
		if rc.req.TLS != nil {
			out.URL.Scheme = "https"
		}
	}
	if out.URL.Host == "" {
		out.URL.Host = rc.req.Host
	}

	if rc.rewriteURL != "" {
		target, err := url.Parse(rc.rewriteURL)
		if err != nil {
			return nil, errors.Join(ErrInvalidRewrite, err)
		}
		out.URL = out.URL.ResolveReference(target)
		out.Host = out.URL.Host
	}

	return out, nil
}
