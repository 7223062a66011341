package notify

import (
	"context"
	"sync"
	"time"

	"github.com/ulmind-com/spice-heaven/internal/cart"
)

// MemStore is an in-memory session.Store for tests.
type MemStore struct {
	mu     sync.Mutex
	data   map[string]map[string]string
	GetErr error
	SetErr error
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[string]map[string]string{}}
}

func (m *MemStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	keys, ok := m.data[sessionID]
	if !ok {
		return "", false, nil
	}
	value, found := keys[key]
	return value, found, nil
}

func (m *MemStore) Set(ctx context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.data[sessionID] == nil {
		m.data[sessionID] = map[string]string{}
	}
	m.data[sessionID][key] = value
	return nil
}

func (m *MemStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data[sessionID], key)
	}
	return nil
}

func (m *MemStore) Raw(sessionID, key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[sessionID][key]
}

// FakeClock returns a fixed time, adjustable per test.
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

func (c *FakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FakeNotifier records every delivery.
type FakeNotifier struct {
	mu       sync.Mutex
	SendErr  error
	sent     []Notification
	sessions []string
}

func (n *FakeNotifier) Send(ctx context.Context, sessionID string, notification Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.SendErr != nil {
		return n.SendErr
	}
	n.sent = append(n.sent, notification)
	n.sessions = append(n.sessions, sessionID)
	return nil
}

func (n *FakeNotifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}

// FakeCarts serves a fixed snapshot per session.
type FakeCarts struct {
	Snapshots map[string]cart.Snapshot
}

func (c *FakeCarts) Snapshot(ctx context.Context, sessionID string) cart.Snapshot {
	return c.Snapshots[sessionID]
}
