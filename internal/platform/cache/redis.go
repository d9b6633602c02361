package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/pagebridge/internal/platform/logger"
)

type redisCache[V any] struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis stores JSON encoded values under "<prefix>:<namespace>:<key>".
func NewRedis[V any](cfg Config, namespace string, baseLog *logger.Logger) (Cache[V], error) {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DB:          cfg.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix := strings.Trim(cfg.Prefix, ":")
	if namespace != "" {
		prefix += ":" + namespace
	}
	return &redisCache[V]{
		log:    baseLog.With("service", "RedisCache", "namespace", namespace),
		rdb:    rdb,
		prefix: prefix,
		ttl:    cfg.TTL,
	}, nil
}

func (c *redisCache[V]) key(k string) string { return c.prefix + ":" + k }

func (c *redisCache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		c.log.Warn("dropping undecodable cache entry", "key", key, "error", err)
		_ = c.rdb.Del(ctx, c.key(key)).Err()
		return zero, false, nil
	}
	return v, true, nil
}

func (c *redisCache[V]) Set(ctx context.Context, key string, val V) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), raw, c.ttl).Err()
}

func (c *redisCache[V]) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, c.key(key)).Err()
}

func (c *redisCache[V]) Close() error { return c.rdb.Close() }
