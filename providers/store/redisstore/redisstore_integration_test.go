//go:build integration

package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/tangshi/providers/store"
)

// TestRedisStore_Integration runs against the server named by REDIS_ADDR.
func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	rdb, err := Dial(ctx, addr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer rdb.Close()

	s := New(rdb, WithPrefix("tangshi:test:"), WithTTL(time.Minute))
	key := uuid.NewString()

	if _, err := s.Load(ctx, key); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Save(ctx, key, []byte(`{"season":"春"}`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load(ctx, key)
	if err != nil || string(got) != `{"season":"春"}` {
		t.Fatalf("Load() = %q, %v", got, err)
	}

	ttl, err := rdb.TTL(ctx, "tangshi:test:"+key).Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("expected a positive TTL, got %v, %v", ttl, err)
	}
}
