package session

import (
	"context"
	"maps"
	"net/http"
	"time"
)

// Store is the session lifecycle interface shared by the cookie-backed and
// server-backed implementations.
//
// GetSession never fails on a bad cookie: any integrity failure yields a
// fresh empty session. CommitSession and DestroySession return the
// Set-Cookie directive to attach to the response; DestroySession always
// returns a Max-Age=0 directive, even for a session that was never
// committed.
type Store interface {
	GetSession(r *http.Request) (*Session, error)
	CommitSession(ctx context.Context, s *Session) (string, error)
	DestroySession(ctx context.Context, s *Session) (string, error)
}

// Record is the persisted form of a session in a server-side backend.
type Record struct {
	Data      map[string]any `json:"data,omitempty"`
	Flash     map[string]any `json:"flash,omitempty"`
	IssuedAt  time.Time      `json:"issued_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// DataStore is the pluggable persistence backend for ServerStore, addressed
// by session id. ReadData returns ErrRecordNotFound for a missing or expired
// record; DeleteData on a missing id is not an error.
type DataStore interface {
	CreateData(ctx context.Context, id string, rec Record) error
	ReadData(ctx context.Context, id string) (Record, error)
	UpdateData(ctx context.Context, id string, rec Record) error
	DeleteData(ctx context.Context, id string) error
}

// copyValues clones a session value map so stored records do not alias
// request-owned state.
func copyValues(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	maps.Copy(dst, src)
	return dst
}
