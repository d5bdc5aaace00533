// Package storage persists the session tokens between runs.
//
// All backends share one contract: a missing key reads as the empty string,
// and Clear overwrites the entry with the empty string instead of deleting
// it, the way the browser client blanks its cookies.
package storage

import (
	"context"
	"sync"
)

// Fixed key names for the persisted tokens.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// Storage is a string key-value store.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}

// Memory is an in-process Storage, used under test and as the "memory"
// backend.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Clear(ctx context.Context, key string) error {
	return m.Set(ctx, key, "")
}
