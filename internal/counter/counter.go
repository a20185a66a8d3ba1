// Package counter tracks how many quick tests have been completed.
package counter

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// Counter is a monotonically non-decreasing completion count
type Counter interface {
	Increment(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// RecordCompletion reads the current count, then increments it, and returns the count to display.
// The displayed value is computed from the earlier read, so concurrent completions may show the same number.
func RecordCompletion(ctx context.Context, c Counter) (int64, error) {
	current, err := c.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read completion count: %w", err)
	}
	if err := c.Increment(ctx); err != nil {
		return current, fmt.Errorf("failed to record completion: %w", err)
	}
	return current + 1, nil
}

// Memory is an in-process counter for development and tests
type Memory struct {
	n atomic.Int64
}

// NewMemory creates a counter starting at start
func NewMemory(start int64) *Memory {
	m := &Memory{}
	m.n.Store(start)
	return m
}

// Increment implements Counter
func (m *Memory) Increment(context.Context) error {
	m.n.Add(1)
	return nil
}

// Count implements Counter
func (m *Memory) Count(context.Context) (int64, error) {
	return m.n.Load(), nil
}

// CompletionStore is the row-insert storage behind the Postgres counter
type CompletionStore interface {
	InsertCompletion(ctx context.Context) error
	CountCompletions(ctx context.Context) (int64, error)
}

// Postgres counts one row per completion
type Postgres struct {
	store CompletionStore
}

// NewPostgres creates a counter backed by store, typically a *db.DB
func NewPostgres(store CompletionStore) *Postgres {
	return &Postgres{store: store}
}

// Increment implements Counter
func (p *Postgres) Increment(ctx context.Context) error {
	return p.store.InsertCompletion(ctx)
}

// Count implements Counter
func (p *Postgres) Count(ctx context.Context) (int64, error) {
	return p.store.CountCompletions(ctx)
}

// DefaultRedisKey holds the quick test completion count
const DefaultRedisKey = "teamhealth:quick_test:completions"

// Redis keeps the count in a single integer key
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis creates a counter on key. An empty key uses DefaultRedisKey.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{client: client, key: key}
}

// Increment implements Counter
func (r *Redis) Increment(ctx context.Context) error {
	return r.client.Incr(ctx, r.key).Err()
}

// Count implements Counter
func (r *Redis) Count(ctx context.Context) (int64, error) {
	n, err := r.client.Get(ctx, r.key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
