package edge

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/edgekit/pkg/cookie"
)

// RequestContext carries per-request state through a middleware chain: the
// inbound request, a cookie jar, client metadata, and any pending redirect
// or rewrite.
type RequestContext struct {
	req      *http.Request
	jar      *cookie.Jar
	clientIP string
	platform string
	geo      Geo

	redirectURL    string
	redirectStatus int
	rewriteURL     string
}

// Request returns the inbound request. Mutating its headers before calling
// next changes what the origin receives.
func (rc *RequestContext) Request() *http.Request {
	return rc.req
}

// Cookies returns the request's cookie jar. Values set or deleted here are
// queued as Set-Cookie headers on whichever response leaves the chain.
func (rc *RequestContext) Cookies() *cookie.Jar {
	return rc.jar
}

// ClientIP returns the resolved client IP, or "" when none could be
// determined.
func (rc *RequestContext) ClientIP() string {
	return rc.clientIP
}

// Platform names the runtime the dispatcher was configured for.
func (rc *RequestContext) Platform() string {
	return rc.platform
}

// Geo returns the request geolocation.
func (rc *RequestContext) Geo() Geo {
	return rc.geo
}

// Redirect marks the request for redirection. The redirect takes effect
// before the next middleware runs; everything downstream, the origin
// included, is skipped. Status defaults to 307 and must be a redirect code.
func (rc *RequestContext) Redirect(url string, status ...int) {
	rc.redirectURL = url
	rc.redirectStatus = http.StatusTemporaryRedirect
	if len(status) > 0 && status[0] >= 300 && status[0] < 400 {
		rc.redirectStatus = status[0]
	}
}

// Rewrite changes the URL the terminal fetch will request, leaving the
// client-visible URL untouched. Relative targets resolve against the
// inbound URL. The last rewrite before the end of the chain wins.
func (rc *RequestContext) Rewrite(url string) {
	rc.rewriteURL = url
}

// redirectResponse materializes the pending redirect, or returns nil when
// none is set.
func (rc *RequestContext) redirectResponse() *http.Response {
	if rc.redirectURL == "" {
		return nil
	}

	header := make(http.Header)
	header.Set("Location", rc.redirectURL)
	return &http.Response{
		Status:     fmt.Sprintf("%d %s", rc.redirectStatus, http.StatusText(rc.redirectStatus)),
		StatusCode: rc.redirectStatus,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     header,
		Body:       http.NoBody,
		Request:    rc.req,
	}
}
