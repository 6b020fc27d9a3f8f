package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrymomot/edgekit/pkg/cookie"
)

// CookieStore is the stateless session store: the whole session is
// JSON-serialized, signed and, when an encryption secret is configured,
// encrypted into a single cookie value.
type CookieStore struct {
	codec *cookie.Codec
	cfg   Config
	now   func() time.Time
}

// envelope is the wire form of a cookie-backed session.
type envelope struct {
	ID       string         `json:"id"`
	Data     map[string]any `json:"data,omitempty"`
	Flash    map[string]any `json:"flash,omitempty"`
	IssuedAt int64          `json:"iat"`
}

// NewCookieStore creates a stateless cookie-backed session store. Secrets
// shorter than 32 characters are rejected here, at construction time.
func NewCookieStore(cfg Config, opts ...Option) (*CookieStore, error) {
	codec, err := cookie.New(cookie.Config{
		Secret:           cfg.Secret,
		EncryptionSecret: cfg.EncryptionSecret,
	})
	if err != nil {
		return nil, err
	}

	st := defaultSettings()
	for _, opt := range opts {
		opt(&st)
	}

	return &CookieStore{codec: codec, cfg: cfg, now: st.now}, nil
}

// GetSession reads the session cookie. Any failure along the way, whether a
// missing cookie, a failed decrypt, a bad signature or a malformed payload,
// yields a fresh empty session under a new id.
func (s *CookieStore) GetSession(r *http.Request) (*Session, error) {
	c, err := r.Cookie(s.cfg.Name)
	if err != nil || c.Value == "" {
		return New(), nil
	}

	raw := c.Value
	if s.codec.CanEncrypt() {
		if raw, err = s.codec.Decrypt(raw); err != nil {
			return New(), nil
		}
	}

	signed, err := s.codec.Verify(raw)
	if err != nil {
		return New(), nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(signed)
	if err != nil {
		return New(), nil
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil || env.ID == "" {
		return New(), nil
	}

	sess := &Session{
		id:       env.ID,
		data:     env.Data,
		flash:    env.Flash,
		issuedAt: time.UnixMilli(env.IssuedAt),
	}
	if sess.data == nil {
		sess.data = make(map[string]any)
	}
	if sess.flash == nil {
		sess.flash = make(map[string]any)
	}
	return sess, nil
}

// CommitSession re-serializes the session into a Set-Cookie directive,
// rotating the session id first when rotation is enabled and due.
func (s *CookieStore) CommitSession(_ context.Context, sess *Session) (string, error) {
	if sess == nil {
		return "", ErrNilSession
	}

	now := s.now()
	if sess.issuedAt.IsZero() {
		sess.issuedAt = now
	}
	if s.cfg.Rotate && now.Sub(sess.issuedAt) >= s.cfg.RotateInterval {
		sess.id = newID()
		sess.issuedAt = now
	}

	payload, err := json.Marshal(envelope{
		ID:       sess.id,
		Data:     sess.data,
		Flash:    sess.flash,
		IssuedAt: sess.issuedAt.UnixMilli(),
	})
	if err != nil {
		return "", err
	}

	value := s.codec.Sign(base64.RawURLEncoding.EncodeToString(payload))
	if s.codec.CanEncrypt() {
		if value, err = s.codec.Encrypt(value); err != nil {
			return "", err
		}
	}

	return cookie.Serialize(s.cfg.Name, value, s.cookieOptions()), nil
}

// DestroySession returns an expired Set-Cookie directive. It succeeds even
// for a nil or never-committed session so a destroy is always observable.
func (s *CookieStore) DestroySession(context.Context, *Session) (string, error) {
	return cookie.Serialize(s.cfg.Name, "", s.expiredOptions()), nil
}

func (s *CookieStore) cookieOptions() cookie.Options {
	return cookie.Options{
		Path:     s.cfg.Path,
		Domain:   s.cfg.Domain,
		MaxAge:   int(s.cfg.MaxAge.Seconds()),
		Secure:   s.cfg.Secure,
		HttpOnly: s.cfg.HttpOnly,
		SameSite: s.cfg.SameSite,
	}
}

func (s *CookieStore) expiredOptions() cookie.Options {
	opts := s.cookieOptions()
	opts.MaxAge = -1
	opts.Expires = time.Unix(0, 0)
	return opts
}
