package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/pagebridge/internal/platform/envutil"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

// Cache is a small TTL key/value store. A miss is (zero, false, nil).
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool, error)
	Set(ctx context.Context, key string, val V) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Backend   string
	Size      int
	TTL       time.Duration
	RedisAddr string
	RedisDB   int
	Prefix    string
}

func ConfigFromEnv() Config {
	return Config{
		Backend:   strings.ToLower(envutil.String("CACHE_BACKEND", "memory")),
		Size:      envutil.Int("CACHE_SIZE", 256),
		TTL:       envutil.Duration("CACHE_TTL", 5*time.Minute),
		RedisAddr: envutil.String("REDIS_ADDR", ""),
		RedisDB:   envutil.Int("REDIS_DB", 0),
		Prefix:    envutil.String("CACHE_PREFIX", "pagebridge"),
	}
}

// New builds the configured backend. namespace keeps keys of different
// value types apart when they share one redis.
func New[V any](cfg Config, namespace string, baseLog *logger.Logger) (Cache[V], error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory[V](cfg.Size, cfg.TTL), nil
	case "redis":
		return NewRedis[V](cfg, namespace, baseLog)
	case "none", "off":
		return Noop[V]{}, nil
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", cfg.Backend)
	}
}

// Noop never stores anything.
type Noop[V any] struct{}

func (Noop[V]) Get(context.Context, string) (V, bool, error) {
	var zero V
	return zero, false, nil
}
func (Noop[V]) Set(context.Context, string, V) error { return nil }
func (Noop[V]) Delete(context.Context, string) error { return nil }
func (Noop[V]) Close() error                         { return nil }
