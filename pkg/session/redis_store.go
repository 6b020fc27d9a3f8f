package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "session:"

// RedisStore implements DataStore on top of go-redis. Records are stored as
// JSON under prefix+id with a TTL matching the record expiry, so Redis
// itself evicts expired sessions.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisStore creates a Redis-backed DataStore. An empty keyPrefix
// defaults to "session:".
func NewRedisStore(client redis.UniversalClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

// CreateData stores a new record with a TTL derived from its expiry.
func (s *RedisStore) CreateData(ctx context.Context, id string, rec Record) error {
	payload, ttl, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.keyPrefix+id, payload, ttl).Err()
}

// ReadData loads a record. A missing key yields ErrRecordNotFound; a key
// holding undecodable data yields ErrRecordInvalid.
func (s *RedisStore) ReadData(ctx context.Context, id string) (Record, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrRecordNotFound
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, errors.Join(ErrRecordInvalid, err)
	}
	return rec, nil
}

// UpdateData replaces the record for an existing id (SET XX), refreshing
// the TTL.
func (s *RedisStore) UpdateData(ctx context.Context, id string, rec Record) error {
	payload, ttl, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	ok, err := s.client.SetXX(ctx, s.keyPrefix+id, payload, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteData removes the record for the id. Deleting a missing id is not an
// error.
func (s *RedisStore) DeleteData(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.keyPrefix+id).Err()
}

func encodeRecord(rec Record) ([]byte, time.Duration, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, 0, err
	}

	var ttl time.Duration
	if !rec.ExpiresAt.IsZero() {
		ttl = time.Until(rec.ExpiresAt)
		if ttl <= 0 {
			return nil, 0, ErrRecordExpired
		}
	}
	return payload, ttl, nil
}
