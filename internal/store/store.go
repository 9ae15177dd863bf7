// Package store persists tracker records (jobs, claims, profiles, review items and score
// results) as JSON documents behind a driver-agnostic interface.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Kind names a record collection
type Kind string

// Record kinds
const (
	KindJob     Kind = "job"
	KindClaim   Kind = "claim"
	KindProfile Kind = "profile"
	KindReview  Kind = "review"
	KindScore   Kind = "score"
)

// Kinds lists every record kind in display order
var Kinds = []Kind{KindJob, KindClaim, KindProfile, KindReview, KindScore}

// Drivers
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ParseKind resolves a user-supplied kind name
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Record is one stored document
type Record struct {
	ID   string          `json:"id"`
	Body json.RawMessage `json:"body"`
}

// Store is the persistence interface every driver implements. List returns records
// ordered by id.
type Store interface {
	Get(ctx context.Context, kind Kind, id string) ([]byte, error)
	Put(ctx context.Context, kind Kind, id string, body []byte) error
	List(ctx context.Context, kind Kind) ([]Record, error)
	Delete(ctx context.Context, kind Kind, id string) error
	Close() error
}

// Options selects and configures a driver
type Options struct {
	Driver      string
	Path        string
	DatabaseURL string
	RedisAddr   string
	RedisDB     int
}

// Open connects the driver named in opts
func Open(ctx context.Context, opts Options, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var (
		s   Store
		err error
	)
	switch opts.Driver {
	case DriverFile, "":
		s, err = NewFileStore(opts.Path, log)
	case DriverPostgres:
		s, err = NewPostgresStore(ctx, opts.DatabaseURL, log)
	case DriverRedis:
		s, err = NewRedisStore(ctx, opts.RedisAddr, opts.RedisDB, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("opened store", zap.String("driver", opts.Driver))
	return s, nil
}

// Table is a typed view over one kind, encoding values as JSON
type Table[T any] struct {
	store Store
	kind  Kind
}

// NewTable returns a typed view over kind
func NewTable[T any](s Store, kind Kind) *Table[T] {
	return &Table[T]{store: s, kind: kind}
}

// Get loads and decodes one record
func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	body, err := t.store.Get(ctx, t.kind, id)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, wrap("decode", t.kind, id, err)
	}
	return v, nil
}

// Put encodes and stores one record
func (t *Table[T]) Put(ctx context.Context, id string, v T) error {
	body, err := json.Marshal(v)
	if err != nil {
		return wrap("encode", t.kind, id, err)
	}
	return t.store.Put(ctx, t.kind, id, body)
}

// List decodes every record of the kind, ordered by id
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	records, err := t.store.List(ctx, t.kind)
	if err != nil {
		return nil, err
	}
	values := make([]T, 0, len(records))
	for _, r := range records {
		var v T
		if err := json.Unmarshal(r.Body, &v); err != nil {
			return nil, wrap("decode", t.kind, r.ID, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// Delete removes one record
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	return t.store.Delete(ctx, t.kind, id)
}

func checkKey(op string, kind Kind, id string) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return wrap(op, kind, id, ErrInvalidKey)
	}
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return wrap(op, kind, id, ErrInvalidKey)
	}
	return nil
}
