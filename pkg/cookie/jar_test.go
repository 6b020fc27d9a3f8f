package cookie_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrymomot/edgekit/pkg/cookie"
)

func newRequest(t *testing.T, cookies ...string) *http.Request {
	t.Helper()
	r, err := http.NewRequest(http.MethodGet, "http://example.com/", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if len(cookies) > 0 {
		r.Header.Set("Cookie", strings.Join(cookies, "; "))
	}
	return r
}

// cookiePair extracts the name=value half of a Set-Cookie directive so it can
// be replayed as a Cookie header.
func cookiePair(directive string) string {
	pair, _, _ := strings.Cut(directive, ";")
	return pair
}

func TestJar_GetIncoming(t *testing.T) {
	t.Parallel()
	jar := cookie.NewJar(newRequest(t, "sid=abc", "theme=dark"))

	got, ok := jar.Get("sid")
	if !ok || got != "abc" {
		t.Errorf("Get(sid) = %q, %v", got, ok)
	}
	if _, ok := jar.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}
}

func TestJar_SetQueuesAndIsVisible(t *testing.T) {
	t.Parallel()
	jar := cookie.NewJar(newRequest(t))

	jar.Set("sid", "abc", cookie.WithMaxAge(60))

	if got, ok := jar.Get("sid"); !ok || got != "abc" {
		t.Errorf("Get after Set = %q, %v", got, ok)
	}

	queued := jar.SetCookies()
	if len(queued) != 1 {
		t.Fatalf("SetCookies() len = %d, want 1", len(queued))
	}
	if !strings.HasPrefix(queued[0], "sid=abc; Max-Age=60") {
		t.Errorf("queued directive = %q", queued[0])
	}
}

func TestJar_DeleteQueuesExpiredCookie(t *testing.T) {
	t.Parallel()
	jar := cookie.NewJar(newRequest(t, "sid=abc"))

	jar.Delete("sid")

	if _, ok := jar.Get("sid"); ok {
		t.Error("Get after Delete = true, want false")
	}

	queued := jar.SetCookies()
	if len(queued) != 1 {
		t.Fatalf("SetCookies() len = %d, want 1", len(queued))
	}
	if !strings.Contains(queued[0], "Max-Age=0") {
		t.Errorf("delete directive %q missing Max-Age=0", queued[0])
	}
}

func TestJar_ApplyAppends(t *testing.T) {
	t.Parallel()
	jar := cookie.NewJar(newRequest(t))
	jar.Set("a", "1")
	jar.Set("b", "2")

	h := http.Header{}
	h.Add("Set-Cookie", "pre=existing")
	jar.Apply(h)

	got := h.Values("Set-Cookie")
	if len(got) != 3 {
		t.Fatalf("Set-Cookie count = %d, want 3", len(got))
	}
	if got[0] != "pre=existing" {
		t.Errorf("existing Set-Cookie was overwritten: %q", got[0])
	}
}

func TestJar_SignedRoundTrip(t *testing.T) {
	t.Parallel()
	codec, err := cookie.New(cookie.Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	jar := codec.NewJar(newRequest(t))
	if err := jar.SetSigned("uid", "42"); err != nil {
		t.Fatalf("SetSigned() error = %v", err)
	}

	next := codec.NewJar(newRequest(t, cookiePair(jar.SetCookies()[0])))
	got, err := next.GetSigned("uid")
	if err != nil {
		t.Fatalf("GetSigned() error = %v", err)
	}
	if got != "42" {
		t.Errorf("GetSigned() = %q, want %q", got, "42")
	}
}

func TestJar_EncryptedRoundTrip(t *testing.T) {
	t.Parallel()
	codec, err := cookie.New(cookie.Config{Secret: testSecret, EncryptionSecret: testEncSecret})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	jar := codec.NewJar(newRequest(t))
	if err := jar.SetEncrypted("token", "top-secret"); err != nil {
		t.Fatalf("SetEncrypted() error = %v", err)
	}

	next := codec.NewJar(newRequest(t, cookiePair(jar.SetCookies()[0])))
	got, err := next.GetEncrypted("token")
	if err != nil {
		t.Fatalf("GetEncrypted() error = %v", err)
	}
	if got != "top-secret" {
		t.Errorf("GetEncrypted() = %q, want %q", got, "top-secret")
	}
}

func TestJar_WithoutCodec(t *testing.T) {
	t.Parallel()
	jar := cookie.NewJar(newRequest(t))

	if err := jar.SetSigned("a", "1"); !errors.Is(err, cookie.ErrNoCodec) {
		t.Errorf("SetSigned() error = %v, want ErrNoCodec", err)
	}
	if _, err := jar.GetSigned("a"); !errors.Is(err, cookie.ErrNoCodec) {
		t.Errorf("GetSigned() error = %v, want ErrNoCodec", err)
	}
	if err := jar.SetEncrypted("a", "1"); !errors.Is(err, cookie.ErrNoCodec) {
		t.Errorf("SetEncrypted() error = %v, want ErrNoCodec", err)
	}
}

func TestJar_GetSignedMissingCookie(t *testing.T) {
	t.Parallel()
	codec, _ := cookie.New(cookie.Config{Secret: testSecret})
	jar := codec.NewJar(newRequest(t))

	if _, err := jar.GetSigned("absent"); !errors.Is(err, cookie.ErrCookieNotFound) {
		t.Errorf("GetSigned() error = %v, want ErrCookieNotFound", err)
	}
}
