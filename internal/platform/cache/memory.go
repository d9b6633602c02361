package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memory[V any] struct {
	lru *expirable.LRU[string, V]
}

func NewMemory[V any](size int, ttl time.Duration) Cache[V] {
	if size <= 0 {
		size = 256
	}
	return &memory[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

func (m *memory[V]) Get(_ context.Context, key string) (V, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

func (m *memory[V]) Set(_ context.Context, key string, val V) error {
	m.lru.Add(key, val)
	return nil
}

func (m *memory[V]) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

func (m *memory[V]) Close() error {
	m.lru.Purge()
	return nil
}
