package csrf_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgekit/pkg/csrf"
	"github.com/dmitrymomot/edgekit/pkg/edge"
	"github.com/dmitrymomot/edgekit/pkg/session"
)

const sessionSecret = "session-secret-that-is-32-chars-long"

type protectEnv struct {
	dispatcher *edge.Dispatcher
	guard      *csrf.Guard
	sessions   session.Store
	origin     *originFetcher
}

type originFetcher struct {
	calls int
}

func (f *originFetcher) Fetch(_ context.Context, req *http.Request) (*http.Response, error) {
	f.calls++
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       http.NoBody,
		Request:    req,
	}, nil
}

func newProtectEnv(t *testing.T, enabled bool) *protectEnv {
	t.Helper()

	cfg := csrf.DefaultConfig()
	cfg.Enabled = enabled
	if enabled {
		cfg.Secret = testSecret
	}
	guard, err := csrf.New(cfg)
	require.NoError(t, err)

	sessCfg := session.DefaultConfig()
	sessCfg.Secret = sessionSecret
	sessions, err := session.NewCookieStore(sessCfg)
	require.NoError(t, err)

	origin := &originFetcher{}
	d := edge.New([]edge.Middleware{csrf.Protect(guard, sessions)}, edge.WithFetcher(origin))

	return &protectEnv{dispatcher: d, guard: guard, sessions: sessions, origin: origin}
}

// sessionRequest builds a request carrying a committed session cookie and
// returns it with the session it belongs to.
func (e *protectEnv) sessionRequest(t *testing.T, method, target string) (*http.Request, *session.Session) {
	t.Helper()

	sess := session.New()
	directive, err := e.sessions.CommitSession(context.Background(), sess)
	require.NoError(t, err)

	pair, _, _ := strings.Cut(directive, ";")
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("Cookie", strings.TrimSpace(pair))
	return r, sess
}

func TestProtect_SafeMethodsPass(t *testing.T) {
	t.Parallel()
	env := newProtectEnv(t, true)

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		resp, err := env.dispatcher.Execute(context.Background(), httptest.NewRequest(method, "http://origin.test/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, method)
	}
	assert.Equal(t, 3, env.origin.calls)
}

func TestProtect_MissingToken(t *testing.T) {
	t.Parallel()
	env := newProtectEnv(t, true)

	resp, err := env.dispatcher.Execute(context.Background(), httptest.NewRequest(http.MethodPost, "http://origin.test/", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "CSRF token missing", string(body))
	assert.Equal(t, 0, env.origin.calls, "rejected requests must not reach the origin")
}

func TestProtect_HeaderToken(t *testing.T) {
	t.Parallel()
	env := newProtectEnv(t, true)

	r, sess := env.sessionRequest(t, http.MethodPost, "http://origin.test/submit")
	token, err := env.guard.Generate(sess.ID())
	require.NoError(t, err)
	r.Header.Set("X-CSRF-Token", token)

	resp, err := env.dispatcher.Execute(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, env.origin.calls)
}

func TestProtect_QueryToken(t *testing.T) {
	t.Parallel()
	env := newProtectEnv(t, true)

	sess := session.New()
	directive, err := env.sessions.CommitSession(context.Background(), sess)
	require.NoError(t, err)
	pair, _, _ := strings.Cut(directive, ";")

	token, err := env.guard.Generate(sess.ID())
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "http://origin.test/submit?csrf_token="+token, nil)
	r.Header.Set("Cookie", strings.TrimSpace(pair))

	resp, err := env.dispatcher.Execute(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtect_InvalidToken(t *testing.T) {
	t.Parallel()
	env := newProtectEnv(t, true)

	r, _ := env.sessionRequest(t, http.MethodPost, "http://origin.test/submit")
	r.Header.Set("X-CSRF-Token", "sid:ts:bogus")

	resp, err := env.dispatcher.Execute(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Invalid CSRF token", string(body))
}

func TestProtect_TokenSessionMismatch(t *testing.T) {
	t.Parallel()
	env := newProtectEnv(t, true)

	// Token issued for one session, request carries another.
	r, _ := env.sessionRequest(t, http.MethodPost, "http://origin.test/submit")
	token, err := env.guard.Generate(session.New().ID())
	require.NoError(t, err)
	r.Header.Set("X-CSRF-Token", token)

	resp, err := env.dispatcher.Execute(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProtect_AnonymousToken(t *testing.T) {
	t.Parallel()
	env := newProtectEnv(t, true)

	// No session cookie at all: GetSession yields a fresh session each time,
	// so only anonymous tokens could ever match. They do not, because a
	// fresh session has a real id.
	r := httptest.NewRequest(http.MethodPost, "http://origin.test/submit", nil)
	token, err := env.guard.Generate("")
	require.NoError(t, err)
	r.Header.Set("X-CSRF-Token", token)

	resp, err := env.dispatcher.Execute(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProtect_Disabled(t *testing.T) {
	t.Parallel()
	env := newProtectEnv(t, false)

	resp, err := env.dispatcher.Execute(context.Background(), httptest.NewRequest(http.MethodPost, "http://origin.test/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, env.origin.calls)
}
