package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "tracker:"

// RedisStore keeps one hash per kind, mapping id to the JSON body
type RedisStore struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisStore connects to addr and verifies the connection
func NewRedisStore(ctx context.Context, addr string, db int, log *zap.Logger) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStore{client: client, log: log}, nil
}

func hashKey(kind Kind) string {
	return redisKeyPrefix + string(kind)
}

// Get loads one record body
func (s *RedisStore) Get(ctx context.Context, kind Kind, id string) ([]byte, error) {
	if err := checkKey("get", kind, id); err != nil {
		return nil, err
	}
	body, err := s.client.HGet(ctx, hashKey(kind), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, wrap("get", kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, wrap("get", kind, id, err)
	}
	return body, nil
}

// Put stores one record, replacing any existing body
func (s *RedisStore) Put(ctx context.Context, kind Kind, id string, body []byte) error {
	if err := checkKey("put", kind, id); err != nil {
		return err
	}
	if err := s.client.HSet(ctx, hashKey(kind), id, body).Err(); err != nil {
		return wrap("put", kind, id, err)
	}
	s.log.Debug("stored record", zap.String("kind", string(kind)), zap.String("id", id), zap.Int("bytes", len(body)))
	return nil
}

// List loads every record of a kind ordered by id
func (s *RedisStore) List(ctx context.Context, kind Kind) ([]Record, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, wrap("list", kind, "", ErrInvalidKey)
	}
	all, err := s.client.HGetAll(ctx, hashKey(kind)).Result()
	if err != nil {
		return nil, wrap("list", kind, "", err)
	}
	records := make([]Record, 0, len(all))
	for id, body := range all {
		records = append(records, Record{ID: id, Body: []byte(body)})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Delete removes one record
func (s *RedisStore) Delete(ctx context.Context, kind Kind, id string) error {
	if err := checkKey("delete", kind, id); err != nil {
		return err
	}
	n, err := s.client.HDel(ctx, hashKey(kind), id).Result()
	if err != nil {
		return wrap("delete", kind, id, err)
	}
	if n == 0 {
		return wrap("delete", kind, id, ErrNotFound)
	}
	s.log.Debug("deleted record", zap.String("kind", string(kind)), zap.String("id", id))
	return nil
}

// Close closes the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
