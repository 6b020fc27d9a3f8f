package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements DataStore with an in-process map. Concurrent
// commits to the same id resolve last-write-wins; it is intended for
// development and tests, not for multi-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	ticker  *time.Ticker
	done    chan struct{}
}

// NewMemoryStore creates an in-memory backend. A positive cleanupInterval
// starts a background goroutine that evicts expired records; stop it with
// Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		records: make(map[string]Record),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		go s.cleanupLoop()
	}

	return s
}

// CreateData stores a new record under the id.
func (s *MemoryStore) CreateData(_ context.Context, id string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = cloneRecord(rec)
	return nil
}

// ReadData returns the record for the id. A missing or expired record
// yields ErrRecordNotFound; expired records are evicted on the way out.
func (s *MemoryStore) ReadData(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	rec, exists := s.records[id]
	s.mu.RUnlock()

	if !exists {
		return Record{}, ErrRecordNotFound
	}

	if !rec.ExpiresAt.IsZero() && !time.Now().Before(rec.ExpiresAt) {
		s.mu.Lock()
		delete(s.records, id)
		s.mu.Unlock()
		return Record{}, ErrRecordNotFound
	}

	return cloneRecord(rec), nil
}

// UpdateData replaces the record for an existing id.
func (s *MemoryStore) UpdateData(_ context.Context, id string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return ErrRecordNotFound
	}

	s.records[id] = cloneRecord(rec)
	return nil
}

// DeleteData removes the record for the id. Deleting a missing id is not an
// error.
func (s *MemoryStore) DeleteData(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

// DeleteExpired removes all expired records.
func (s *MemoryStore) DeleteExpired(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, rec := range s.records {
		if !rec.ExpiresAt.IsZero() && !now.Before(rec.ExpiresAt) {
			delete(s.records, id)
		}
	}
	return nil
}

// Len returns the number of live records, expired ones included until the
// next cleanup.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close stops the cleanup goroutine. Safe to call on a store created
// without one.
func (s *MemoryStore) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			_ = s.DeleteExpired(context.Background())
		case <-s.done:
			return
		}
	}
}

func cloneRecord(rec Record) Record {
	rec.Data = copyValues(rec.Data)
	rec.Flash = copyValues(rec.Flash)
	return rec
}
