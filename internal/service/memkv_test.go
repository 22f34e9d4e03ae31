package service

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/esim-activation-service/internal/persistence"
)

// memKV is an in-memory KV fake for service tests.
type memKV struct {
	mu      sync.Mutex
	entries map[string]memEntry
	sets    map[string]map[string]struct{}
	failAll bool
}

type memEntry struct {
	value     string
	expiresAt time.Time
}

func newMemKV() *memKV {
	return &memKV{
		entries: map[string]memEntry{},
		sets:    map[string]map[string]struct{}{},
	}
}

type memKVError struct{}

func (memKVError) Error() string { return "memkv: store failure" }

func (m *memKV) live(key string) (memEntry, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return memEntry{}, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return memEntry{}, false
	}
	return entry, true
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return "", memKVError{}
	}
	entry, ok := m.live(key)
	if !ok {
		return "", persistence.ErrKeyNotFound
	}
	return entry.value, nil
}

func (m *memKV) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return memKVError{}
	}
	entry := memEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *memKV) SetIfAbsent(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return false, memKVError{}
	}
	if _, ok := m.live(key); ok {
		return false, nil
	}
	entry := memEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = entry
	return true, nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return memKVError{}
	}
	delete(m.entries, key)
	return nil
}

func (m *memKV) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return false, memKVError{}
	}
	_, ok := m.live(key)
	return ok, nil
}

func (m *memKV) AddToSet(_ context.Context, set, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return memKVError{}
	}
	if m.sets[set] == nil {
		m.sets[set] = map[string]struct{}{}
	}
	m.sets[set][member] = struct{}{}
	return nil
}

func (m *memKV) RemoveFromSet(_ context.Context, set, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return memKVError{}
	}
	delete(m.sets[set], member)
	return nil
}

func (m *memKV) SetMembers(_ context.Context, set string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, memKVError{}
	}
	members := make([]string, 0, len(m.sets[set]))
	for member := range m.sets[set] {
		members = append(members, member)
	}
	return members, nil
}

func (m *memKV) Ping(context.Context) error { return nil }
func (m *memKV) Close() error               { return nil }

var _ persistence.KV = (*memKV)(nil)
