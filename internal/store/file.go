package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps each record as <dir>/<kind>/<id>.json
type FileStore struct {
	dir string
	log *zap.Logger
	mu  sync.RWMutex
}

// NewFileStore creates dir if needed and returns a store rooted there
func NewFileStore(dir string, log *zap.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store path is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) path(kind Kind, id string) string {
	return filepath.Join(s.dir, string(kind), id+".json")
}

// Get reads one record
func (s *FileStore) Get(ctx context.Context, kind Kind, id string) ([]byte, error) {
	if err := checkKey("get", kind, id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, wrap("get", kind, id, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	body, err := os.ReadFile(s.path(kind, id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, wrap("get", kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, wrap("get", kind, id, err)
	}
	return body, nil
}

// Put writes one record through a temp file so readers never see a partial document
func (s *FileStore) Put(ctx context.Context, kind Kind, id string, body []byte) error {
	if err := checkKey("put", kind, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return wrap("put", kind, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.dir, string(kind))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return wrap("put", kind, id, err)
	}
	tmp, err := os.CreateTemp(dir, id+".*.tmp")
	if err != nil {
		return wrap("put", kind, id, err)
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return wrap("put", kind, id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return wrap("put", kind, id, err)
	}
	if err := os.Rename(tmp.Name(), s.path(kind, id)); err != nil {
		os.Remove(tmp.Name())
		return wrap("put", kind, id, err)
	}

	s.log.Debug("stored record", zap.String("kind", string(kind)), zap.String("id", id), zap.Int("bytes", len(body)))
	return nil
}

// List reads every record of a kind ordered by id. A kind with no records yields an empty slice.
func (s *FileStore) List(ctx context.Context, kind Kind) ([]Record, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, wrap("list", kind, "", ErrInvalidKey)
	}
	if err := ctx.Err(); err != nil {
		return nil, wrap("list", kind, "", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.dir, string(kind)))
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, wrap("list", kind, "", err)
	}

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		body, err := os.ReadFile(filepath.Join(s.dir, string(kind), name))
		if err != nil {
			return nil, wrap("list", kind, id, err)
		}
		records = append(records, Record{ID: id, Body: body})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Delete removes one record
func (s *FileStore) Delete(ctx context.Context, kind Kind, id string) error {
	if err := checkKey("delete", kind, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return wrap("delete", kind, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(kind, id))
	if errors.Is(err, os.ErrNotExist) {
		return wrap("delete", kind, id, ErrNotFound)
	}
	if err != nil {
		return wrap("delete", kind, id, err)
	}
	s.log.Debug("deleted record", zap.String("kind", string(kind)), zap.String("id", id))
	return nil
}

// Close is a no-op for the file store
func (s *FileStore) Close() error {
	return nil
}
