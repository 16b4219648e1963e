package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leofalp/tangshi/providers/store"
)

// fakeRedis records Set calls and serves Get from a map.
type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failAll error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failAll != nil {
		return redis.NewStringResult("", f.failAll)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.failAll != nil {
		return redis.NewStatusResult("", f.failAll)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	s := New(fake)

	if _, err := s.Load(ctx, "s1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Save(ctx, "s1", []byte(`{"year":1}`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, ok := fake.data["tangshi:save:s1"]; !ok {
		t.Fatalf("expected default prefix, keys = %v", fake.data)
	}
	if fake.ttls["tangshi:save:s1"] != 0 {
		t.Errorf("expected no expiry by default, got %v", fake.ttls["tangshi:save:s1"])
	}

	got, err := s.Load(ctx, "s1")
	if err != nil || string(got) != `{"year":1}` {
		t.Fatalf("Load() = %q, %v", got, err)
	}
}

func TestRedisStore_Options(t *testing.T) {
	fake := newFakeRedis()
	s := New(fake, WithPrefix("trial:"), WithTTL(time.Hour))

	if err := s.Save(context.Background(), "abc", []byte("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if fake.ttls["trial:abc"] != time.Hour {
		t.Fatalf("expected key trial:abc with 1h TTL, got %v", fake.ttls)
	}
}

func TestRedisStore_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	fake := newFakeRedis()
	fake.failAll = boom
	s := New(fake)

	if _, err := s.Load(ctx, "k"); !errors.Is(err, boom) || errors.Is(err, store.ErrNotFound) {
		t.Errorf("Load() error = %v, want wrapped connection error", err)
	}
	if err := s.Save(ctx, "k", []byte("v")); !errors.Is(err, boom) {
		t.Errorf("Save() error = %v, want wrapped connection error", err)
	}
}
