package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/edgekit/pkg/clientip"
)

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := clientip.SetIPToContext(context.Background(), "203.0.113.7")
	if got := clientip.GetIPFromContext(ctx); got != "203.0.113.7" {
		t.Errorf("GetIPFromContext() = %q, want %q", got, "203.0.113.7")
	}

	if got := clientip.GetIPFromContext(context.Background()); got != "" {
		t.Errorf("GetIPFromContext() on empty context = %q, want empty", got)
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	handler := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = clientip.GetIPFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Real-IP", "198.51.100.9")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if seen != "198.51.100.9" {
		t.Errorf("middleware stored %q, want %q", seen, "198.51.100.9")
	}
}
