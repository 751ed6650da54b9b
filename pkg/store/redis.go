package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps redirect records in Redis as JSON blobs under
// "<table>:<host>:default".
type RedisStore struct {
	client *redis.Client
	table  string
}

// NewRedisStore creates a Redis-backed store. An empty table falls back
// to DefaultTable.
func NewRedisStore(client *redis.Client, table string) *RedisStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if table == "" {
		table = DefaultTable
	}
	return &RedisStore{
		client: client,
		table:  table,
	}
}

func (s *RedisStore) key(host string) string {
	return fmt.Sprintf("%s:%s:%s", s.table, host, RowKey)
}

// Get fetches the record for a host. Returns ErrNotFound when the key
// does not exist.
func (s *RedisStore) Get(ctx context.Context, host string) (*Record, error) {
	start := time.Now()

	data, err := s.client.Get(ctx, s.key(host)).Bytes()
	lookupDuration.WithLabelValues(backendRedis).Observe(time.Since(start).Seconds())
	if err != nil {
		if err == redis.Nil {
			lookupsTotal.WithLabelValues(backendRedis, resultNotFound).Inc()
			return nil, ErrNotFound
		}
		lookupsTotal.WithLabelValues(backendRedis, resultError).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		lookupsTotal.WithLabelValues(backendRedis, resultError).Inc()
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	lookupsTotal.WithLabelValues(backendRedis, resultFound).Inc()
	return &rec, nil
}

// Put writes the record for a host, overwriting any previous one.
func (s *RedisStore) Put(ctx context.Context, host string, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record cannot be nil")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if err := s.client.Set(ctx, s.key(host), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks connectivity to Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
