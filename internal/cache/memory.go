package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	value   []byte
	sliding time.Duration
	soft    time.Time // refreshed on access
	hard    time.Time // absolute cap
}

// Memory is an in-process cache bounded by an LRU of fixed capacity.
type Memory struct {
	mu  sync.Mutex
	lru *lru.Cache[string, entry]
	now func() time.Time
}

func NewMemory(capacity int) (*Memory, error) {
	if capacity <= 0 {
		capacity = 1
	}
	c, err := lru.New[string, entry](capacity)
	if err != nil {
		return nil, err
	}
	return &Memory{lru: c, now: time.Now}, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lru.Get(key)
	if !ok {
		return nil, false
	}
	now := m.now()
	if now.After(e.soft) || now.After(e.hard) {
		m.lru.Remove(key)
		return nil, false
	}

	// Slide the window forward, never past the absolute cap.
	soft := now.Add(e.sliding)
	if soft.After(e.hard) {
		soft = e.hard
	}
	e.soft = soft
	m.lru.Add(key, e)

	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, sliding, absolute time.Duration) {
	now := m.now()
	soft := now.Add(sliding)
	hard := now.Add(absolute)
	if soft.After(hard) {
		soft = hard
	}

	m.mu.Lock()
	m.lru.Add(key, entry{value: value, sliding: sliding, soft: soft, hard: hard})
	m.mu.Unlock()
}

func (m *Memory) Remove(_ context.Context, key string) {
	m.mu.Lock()
	m.lru.Remove(key)
	m.mu.Unlock()
}
