package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/pagebridge/internal/platform/logger"
)

type entry struct {
	Path string `json:"path"`
	N    int    `json:"n"`
}

func exercise(t *testing.T, c Cache[[]entry]) {
	t.Helper()
	ctx := context.Background()
	key := uuid.NewString()

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected miss: ok=%v err=%v", ok, err)
	}
	want := []entry{{Path: "/0001/", N: 1}, {Path: "/0001/0002/", N: 2}}
	if err := c.Set(ctx, key, want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit: ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[1].Path != "/0001/0002/" || got[1].N != 2 {
		t.Fatalf("Get: got=%+v", got)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemory[[]entry](8, time.Minute)
	defer c.Close()
	exercise(t, c)
}

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemory[int](8, 20*time.Millisecond)
	ctx := context.Background()
	_ = c.Set(ctx, "k", 1)
	time.Sleep(60 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestNoopAndUnknownBackend(t *testing.T) {
	c, err := New[int](Config{Backend: "none"}, "x", logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = c.Set(context.Background(), "k", 1)
	if _, ok, _ := c.Get(context.Background(), "k"); ok {
		t.Fatalf("noop cache should never hit")
	}
	if _, err := New[int](Config{Backend: "memcached"}, "x", logger.Nop()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	c, err := NewRedis[[]entry](Config{RedisAddr: addr, Prefix: "pagebridge-test", TTL: time.Minute}, "sites", logger.Nop())
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer c.Close()
	exercise(t, c)
}
