package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTable = "sessions"

// tableNamePattern restricts table names to plain identifiers; the name is
// interpolated into DDL/DML and must not be attacker-controlled anyway.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresStore implements DataStore on a single Postgres table with a JSONB
// record column and an expiry column used both for lookups and for periodic
// cleanup.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresStore creates a Postgres-backed DataStore. An empty table name
// defaults to "sessions".
func NewPostgresStore(pool *pgxpool.Pool, table string) (*PostgresStore, error) {
	if table == "" {
		table = defaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return &PostgresStore{pool: pool, table: table}, nil
}

// Migrate creates the session table and its expiry index if they do not
// exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id         TEXT PRIMARY KEY,
			record     JSONB NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS %[1]s_expires_at_idx ON %[1]s (expires_at);`, s.table)

	_, err := s.pool.Exec(ctx, ddl)
	return err
}

// CreateData inserts a record, replacing any row left behind under the same
// id.
func (s *PostgresStore) CreateData(ctx context.Context, id string, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, record, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record, expires_at = EXCLUDED.expires_at`, s.table)

	_, err = s.pool.Exec(ctx, query, id, payload, rec.ExpiresAt)
	return err
}

// ReadData loads a live record; rows past their expiry count as missing.
func (s *PostgresStore) ReadData(ctx context.Context, id string) (Record, error) {
	query := fmt.Sprintf(`SELECT record FROM %s WHERE id = $1 AND expires_at > now()`, s.table)

	var payload []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return Record{}, errors.Join(ErrRecordInvalid, err)
	}
	return rec, nil
}

// UpdateData replaces the record for an existing id.
func (s *PostgresStore) UpdateData(ctx context.Context, id string, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET record = $2, expires_at = $3 WHERE id = $1`, s.table)

	tag, err := s.pool.Exec(ctx, query, id, payload, rec.ExpiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteData removes the row for the id. Deleting a missing id is not an
// error.
func (s *PostgresStore) DeleteData(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)
	_, err := s.pool.Exec(ctx, query, id)
	return err
}

// DeleteExpired removes all rows past their expiry. Intended to run
// periodically from a background job.
func (s *PostgresStore) DeleteExpired(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= now()`, s.table)
	_, err := s.pool.Exec(ctx, query)
	return err
}
