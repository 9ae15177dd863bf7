package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createRecordsTable = `CREATE TABLE IF NOT EXISTS records (
	kind       TEXT NOT NULL,
	id         TEXT NOT NULL,
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (kind, id)
)`

// PostgresStore keeps every record in a single records table keyed by (kind, id)
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewPostgresStore connects, verifies the connection and creates the records table if missing
func NewPostgresStore(ctx context.Context, databaseURL string, log *zap.Logger) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createRecordsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create records table: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &PostgresStore{pool: pool, log: log}, nil
}

// Get loads one record body
func (s *PostgresStore) Get(ctx context.Context, kind Kind, id string) ([]byte, error) {
	if err := checkKey("get", kind, id); err != nil {
		return nil, err
	}
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM records WHERE kind = $1 AND id = $2`,
		string(kind), id,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, wrap("get", kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, wrap("get", kind, id, err)
	}
	return body, nil
}

// Put upserts one record
func (s *PostgresStore) Put(ctx context.Context, kind Kind, id string, body []byte) error {
	if err := checkKey("put", kind, id); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO records (kind, id, body)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (kind, id) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`,
		string(kind), id, body,
	)
	if err != nil {
		return wrap("put", kind, id, err)
	}
	s.log.Debug("stored record", zap.String("kind", string(kind)), zap.String("id", id), zap.Int("bytes", len(body)))
	return nil
}

// List loads every record of a kind ordered by id
func (s *PostgresStore) List(ctx context.Context, kind Kind) ([]Record, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, wrap("list", kind, "", ErrInvalidKey)
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, body FROM records WHERE kind = $1 ORDER BY id`,
		string(kind),
	)
	if err != nil {
		return nil, wrap("list", kind, "", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var r Record
		var body []byte
		if err := rows.Scan(&r.ID, &body); err != nil {
			return nil, wrap("list", kind, "", err)
		}
		r.Body = body
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list", kind, "", err)
	}
	return records, nil
}

// Delete removes one record
func (s *PostgresStore) Delete(ctx context.Context, kind Kind, id string) error {
	if err := checkKey("delete", kind, id); err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM records WHERE kind = $1 AND id = $2`,
		string(kind), id,
	)
	if err != nil {
		return wrap("delete", kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("delete", kind, id, ErrNotFound)
	}
	s.log.Debug("deleted record", zap.String("kind", string(kind)), zap.String("id", id))
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
