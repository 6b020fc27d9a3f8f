package csrf

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

const minSecretLength = 32

// anonymousID stands in when no session id is supplied, so tokens can be
// issued before a session cookie exists.
const anonymousID = "anonymous"

// Guard issues and verifies CSRF tokens.
type Guard struct {
	cfg Config
	now func() time.Time
}

// Option configures optional guard behavior.
type Option func(*Guard)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		g.now = now
	}
}

// New creates a CSRF guard. The secret is validated only when the guard is
// enabled; a disabled guard never signs anything.
func New(cfg Config, opts ...Option) (*Guard, error) {
	if cfg.Enabled {
		if cfg.Secret == "" {
			return nil, ErrNoSecret
		}
		if len(cfg.Secret) < minSecretLength {
			return nil, ErrSecretTooShort
		}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-CSRF-Token"
	}
	if cfg.QueryParam == "" {
		cfg.QueryParam = "csrf_token"
	}

	g := &Guard{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Enabled reports whether the guard enforces tokens.
func (g *Guard) Enabled() bool {
	return g.cfg.Enabled
}

// Generate issues a token bound to the session id, falling back to a shared
// anonymous identity when the id is empty. A disabled guard refuses rather
// than hand out a token nothing will ever accept.
func (g *Guard) Generate(sessionID string) (string, error) {
	if !g.cfg.Enabled {
		return "", ErrDisabled
	}
	if sessionID == "" {
		sessionID = anonymousID
	}

	base := sessionID + ":" + strconv.FormatInt(g.now().UnixMilli(), 36)
	return base + ":" + g.signature(base), nil
}

// Verify reports whether the token is authentic and within its TTL. When a
// session id is supplied the token must belong to it. Malformed input never
// errors, it just fails the check.
func (g *Guard) Verify(token, sessionID string) bool {
	if !g.cfg.Enabled {
		return false
	}

	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return false
	}

	base := parts[0] + ":" + parts[1]
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	expected, err := base64.RawURLEncoding.DecodeString(g.signature(base))
	if err != nil {
		return false
	}
	if !hmac.Equal(sig, expected) {
		return false
	}

	if sessionID != "" && parts[0] != sessionID {
		return false
	}

	issuedMs, err := strconv.ParseInt(parts[1], 36, 64)
	if err != nil {
		return false
	}
	age := g.now().UnixMilli() - issuedMs
	return age >= 0 && age <= g.cfg.TTL.Milliseconds()
}

func (g *Guard) signature(base string) string {
	mac := hmac.New(sha256.New, []byte(g.cfg.Secret))
	mac.Write([]byte(base))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
