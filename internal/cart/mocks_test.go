package cart

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-memory session.Store for testing, with optional
// per-operation failure hooks.
type MemStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]string
	GetErr error
	SetErr error
	DelErr error
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]map[string]string)}
}

func (m *MemStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[sessionID][key]
	return value, ok, nil
}

func (m *MemStore) Set(ctx context.Context, sessionID, key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[sessionID] == nil {
		m.data[sessionID] = make(map[string]string)
	}
	m.data[sessionID][key] = value
	return nil
}

func (m *MemStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if m.DelErr != nil {
		return m.DelErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data[sessionID], key)
	}
	return nil
}

// Has reports whether a key is present, bypassing failure hooks.
func (m *MemStore) Has(sessionID, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[sessionID][key]
	return ok
}

// Raw returns a stored value, bypassing failure hooks.
func (m *MemStore) Raw(sessionID, key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[sessionID][key]
}

// FakeClock is a settable clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
