package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Session holds request-scoped session state: persistent data plus one-shot
// flash values kept in a separate map. It is owned by the caller for the
// duration of one request and persisted via the store's CommitSession.
type Session struct {
	id       string
	data     map[string]any
	flash    map[string]any
	issuedAt time.Time

	// stored marks a session loaded from a server-side backend, so commit
	// knows whether to create or update the record.
	stored bool
}

// New creates a fresh empty session under a newly generated id.
func New() *Session {
	return &Session{
		id:    newID(),
		data:  make(map[string]any),
		flash: make(map[string]any),
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Get retrieves a value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.data == nil {
		return nil, false
	}
	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data. JSON round trips turn
// numbers into float64, so both forms are accepted.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data.
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Has reports whether the key exists in session data.
func (s *Session) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set stores a value in session data.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.data == nil {
		s.data = make(map[string]any)
	}
	s.data[key] = value
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.data == nil {
		return
	}
	delete(s.data, key)
}

// Clear removes all persistent data from the session. Flash values are not
// affected.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.data = make(map[string]any)
}

// Flash stores a value that survives exactly one read after the next commit.
func (s *Session) Flash(key string, value any) {
	if s == nil {
		return
	}
	if s.flash == nil {
		s.flash = make(map[string]any)
	}
	s.flash[key] = value
}

// GetFlash returns a flash value and removes it from the session in one
// step, so the removal is persisted by the next commit.
func (s *Session) GetFlash(key string) (any, bool) {
	if s == nil || s.flash == nil {
		return nil, false
	}
	val, ok := s.flash[key]
	if ok {
		delete(s.flash, key)
	}
	return val, ok
}

// newID generates a session id from 32 cryptographically random bytes,
// hex encoded. crypto/rand.Read never returns an error; the runtime aborts
// if no secure source is available.
func newID() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
