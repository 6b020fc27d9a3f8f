package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/edgekit/pkg/cookie"
)

// ServerStore keeps the session payload in a DataStore backend and puts only
// a signed session id into the cookie.
type ServerStore struct {
	codec   *cookie.Codec
	backend DataStore
	cfg     Config
	now     func() time.Time
}

// NewServerStore creates a server-backed session store over the given
// backend. The cookie carries the signed session id only, so no encryption
// secret is required.
func NewServerStore(cfg Config, backend DataStore, opts ...Option) (*ServerStore, error) {
	if backend == nil {
		return nil, errors.New("session: nil backend")
	}

	codec, err := cookie.New(cookie.Config{Secret: cfg.Secret})
	if err != nil {
		return nil, err
	}

	st := defaultSettings()
	for _, opt := range opts {
		opt(&st)
	}

	return &ServerStore{codec: codec, backend: backend, cfg: cfg, now: st.now}, nil
}

// GetSession verifies the signed id from the cookie and loads the record
// from the backend. A bad signature, a missing record or an expired record
// all yield a fresh empty session.
func (s *ServerStore) GetSession(r *http.Request) (*Session, error) {
	c, err := r.Cookie(s.cfg.Name)
	if err != nil || c.Value == "" {
		return New(), nil
	}

	id, err := s.codec.Verify(c.Value)
	if err != nil || id == "" {
		return New(), nil
	}

	rec, err := s.backend.ReadData(r.Context(), id)
	if err != nil {
		return New(), nil
	}
	if !rec.ExpiresAt.IsZero() && !s.now().Before(rec.ExpiresAt) {
		return New(), nil
	}

	sess := &Session{
		id:       id,
		data:     rec.Data,
		flash:    rec.Flash,
		issuedAt: rec.IssuedAt,
		stored:   true,
	}
	if sess.data == nil {
		sess.data = make(map[string]any)
	}
	if sess.flash == nil {
		sess.flash = make(map[string]any)
	}
	return sess, nil
}

// CommitSession persists the session record, creating or updating it as
// needed, and returns the Set-Cookie directive carrying the signed id. When
// rotation is due, a new record is created under a fresh id and the old one
// deleted.
func (s *ServerStore) CommitSession(ctx context.Context, sess *Session) (string, error) {
	if sess == nil {
		return "", ErrNilSession
	}

	now := s.now()
	if sess.issuedAt.IsZero() {
		sess.issuedAt = now
	}

	rotated := false
	oldID := sess.id
	if s.cfg.Rotate && now.Sub(sess.issuedAt) >= s.cfg.RotateInterval {
		sess.id = newID()
		sess.issuedAt = now
		rotated = true
	}

	rec := Record{
		Data:      copyValues(sess.data),
		Flash:     copyValues(sess.flash),
		IssuedAt:  sess.issuedAt,
		ExpiresAt: now.Add(s.cfg.MaxAge),
	}

	switch {
	case rotated:
		if err := s.backend.CreateData(ctx, sess.id, rec); err != nil {
			return "", err
		}
		if sess.stored {
			_ = s.backend.DeleteData(ctx, oldID)
		}
	case sess.stored:
		err := s.backend.UpdateData(ctx, sess.id, rec)
		if errors.Is(err, ErrRecordNotFound) {
			// Record evicted between read and commit; recreate it.
			err = s.backend.CreateData(ctx, sess.id, rec)
		}
		if err != nil {
			return "", err
		}
	default:
		if err := s.backend.CreateData(ctx, sess.id, rec); err != nil {
			return "", err
		}
	}
	sess.stored = true

	return cookie.Serialize(s.cfg.Name, s.codec.Sign(sess.id), s.cookieOptions()), nil
}

// DestroySession deletes the backend record and returns an expired
// Set-Cookie directive. The directive is returned unconditionally, even when
// the record was already gone, so a destroy is always idempotent and
// observable.
func (s *ServerStore) DestroySession(ctx context.Context, sess *Session) (string, error) {
	directive := cookie.Serialize(s.cfg.Name, "", s.expiredOptions())

	if sess == nil || sess.id == "" {
		return directive, nil
	}

	if err := s.backend.DeleteData(ctx, sess.id); err != nil && !errors.Is(err, ErrRecordNotFound) {
		return directive, err
	}
	return directive, nil
}

func (s *ServerStore) cookieOptions() cookie.Options {
	return cookie.Options{
		Path:     s.cfg.Path,
		Domain:   s.cfg.Domain,
		MaxAge:   int(s.cfg.MaxAge.Seconds()),
		Secure:   s.cfg.Secure,
		HttpOnly: s.cfg.HttpOnly,
		SameSite: s.cfg.SameSite,
	}
}

func (s *ServerStore) expiredOptions() cookie.Options {
	opts := s.cookieOptions()
	opts.MaxAge = -1
	opts.Expires = time.Unix(0, 0)
	return opts
}
