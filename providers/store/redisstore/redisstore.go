package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leofalp/tangshi/providers/store"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "tangshi:save:"

// Commander is the subset of redis.Cmdable used by RedisStore. Any
// *redis.Client, *redis.ClusterClient or redis.UniversalClient satisfies it.
type Commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStore implements [store.Store] with Redis persistence.
type RedisStore struct {
	rdb    Commander
	prefix string
	ttl    time.Duration
}

// Compile-time check: RedisStore must implement store.Store.
var _ store.Store = (*RedisStore)(nil)

// Option configures optional RedisStore behavior.
type Option func(*RedisStore)

// WithPrefix overrides the key prefix ("tangshi:save:").
func WithPrefix(prefix string) Option {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithTTL sets an expiry on every saved key. Zero keeps keys forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// New wraps a Redis client.
func New(rdb Commander, opts ...Option) *RedisStore {
	s := &RedisStore{
		rdb:    rdb,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dial connects to the Redis server at addr and verifies the connection.
// The caller owns the returned client and must close it.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redisstore: ping %s: %w", addr, err)
	}

	return rdb, nil
}

// Load returns the payload stored under key, or [store.ErrNotFound].
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("redisstore: load %q: %w", key, err)
	}

	return data, nil
}

// Save writes data under key, applying the configured TTL.
func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.rdb.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: save %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}
