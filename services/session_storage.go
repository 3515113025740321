package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStorage is the durable slot behind the session store. Production
// uses Redis; tests use the in-memory backend.
type SessionStorage interface {
	// Read returns (nil, nil) when the key is absent.
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MemorySessionStorage keeps sessions in-process. Entries rely on the session
// store's own expiry check rather than a TTL sweep.
type MemorySessionStorage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemorySessionStorage() *MemorySessionStorage {
	return &MemorySessionStorage{slots: make(map[string][]byte)}
}

func (m *MemorySessionStorage) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *MemorySessionStorage) Write(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.slots[key] = cp
	return nil
}

func (m *MemorySessionStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

const redisSessionPrefix = "session:"

// RedisSessionStorage persists sessions in Redis keyed by access token, with
// the session lifetime as TTL.
type RedisSessionStorage struct {
	Client *redis.Client
}

func NewRedisSessionStorage(client *redis.Client) *RedisSessionStorage {
	return &RedisSessionStorage{Client: client}
}

func (r *RedisSessionStorage) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.Client.Get(ctx, redisSessionPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisSessionStorage) Write(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, redisSessionPrefix+key, data, ttl).Err()
}

func (r *RedisSessionStorage) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, redisSessionPrefix+key).Err()
}
