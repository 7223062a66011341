package order

import (
	"context"
	"sync"
	"time"

	"github.com/appetiteclub/apt/events"

	"github.com/ulmind-com/spice-heaven/internal/hours"
	"github.com/ulmind-com/spice-heaven/pkg/event"
)

// MemStore is an in-memory session.Store for tests.
type MemStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[string]map[string]string{}}
}

func (m *MemStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

// FakeClock returns a fixed time.
type FakeClock struct {
	now time.Time
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// FakeGate answers a fixed hours status.
type FakeGate struct {
	Status hours.Status
}

func (g *FakeGate) Refresh() hours.Status {
	return g.Status
}

// FakeGeocoder returns a fixed address.
type FakeGeocoder struct {
	Address string
}

func (g *FakeGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) string {
	return g.Address
}

// FakePublisher records published messages.
type FakePublisher struct {
	mu     sync.Mutex
	topics []string
	data   [][]byte
}

func (p *FakePublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.data = append(p.data, msg)
	return nil
}

func (p *FakePublisher) Published() ([]string, [][]byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...), append([][]byte(nil), p.data...)
}

// FakeToucher records touched sessions.
type FakeToucher struct {
	sessions []string
}

func (t *FakeToucher) Touch(sessionID string) {
	t.sessions = append(t.sessions, sessionID)
}

// MockSubscriber implements events.Subscriber for tests.
type MockSubscriber struct {
	SubscribeFunc func(ctx context.Context, topic string, handler events.HandlerFunc) error
}

func (m *MockSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, topic, handler)
	}
	return nil
}

// FakeRecorder records saved order events.
type FakeRecorder struct {
	SaveErr error
	saved   []event.OrderPlacedEvent
}

func (r *FakeRecorder) Save(ctx context.Context, evt event.OrderPlacedEvent) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.saved = append(r.saved, evt)
	return nil
}

func (r *FakeRecorder) Saved() []event.OrderPlacedEvent {
	return append([]event.OrderPlacedEvent(nil), r.saved...)
}
