package notify

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/ulmind-com/spice-heaven/internal/cart"
	"github.com/ulmind-com/spice-heaven/internal/session"
	"github.com/ulmind-com/spice-heaven/pkg"
	"github.com/ulmind-com/spice-heaven/pkg/event"
)

const (
	defaultTickInterval = 10 * time.Second

	// sessionIdle bounds how long a session stays on the scheduler's
	// active list after its last request.
	sessionIdle = 30 * time.Minute
)

// CartReader is the slice of the cart service the scheduler needs.
type CartReader interface {
	Snapshot(ctx context.Context, sessionID string) cart.Snapshot
}

// Scheduler drives both notification checks on a short tick: the daily
// meal-slot broadcasts and the cart-abandonment reminder. It only
// evaluates sessions it has recently seen traffic from; Touch registers
// a session as active. Dedup markers live in the session store, so a
// restart never double-fires.
type Scheduler struct {
	store    session.Store
	carts    CartReader
	perms    *PermissionService
	notifier Notifier
	clock    pkg.Clock
	logger   apt.Logger
	slots    []Slot
	interval time.Duration

	mu       sync.Mutex
	lastSeen map[string]time.Time

	poke chan struct{}
	stop chan struct{}
	once sync.Once
}

func NewScheduler(store session.Store, carts CartReader, perms *PermissionService, notifier Notifier, clock pkg.Clock, logger apt.Logger) *Scheduler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if clock == nil {
		clock = pkg.NewSystemClock()
	}
	return &Scheduler{
		store:    store,
		carts:    carts,
		perms:    perms,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
		slots:    DefaultSlots(),
		interval: defaultTickInterval,
		lastSeen: map[string]time.Time{},
		poke:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// Touch marks a session as active and requests an immediate tick, the
// server-side analog of the client re-checking on focus. Handlers call
// it on every session-scoped request.
func (s *Scheduler) Touch(sessionID string) {
	s.mu.Lock()
	s.lastSeen[sessionID] = s.clock.Now()
	s.mu.Unlock()

	select {
	case s.poke <- struct{}{}:
	default:
	}
}

// Start begins the tick loop.
func (s *Scheduler) Start(ctx context.Context) error {
	go s.run(ctx)
	s.logger.Info("Notification scheduler started", "slots", len(s.slots))
	return nil
}

// Stop terminates the tick loop.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.Tick(ctx)
		case <-s.poke:
			s.Tick(ctx)
		}
	}
}

// Tick runs one round of checks across all active sessions.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.clock.Now()

	for _, sessionID := range s.activeSessions(now) {
		if !s.perms.Granted(ctx, sessionID) {
			continue
		}
		s.checkSlots(ctx, sessionID, now)
		s.checkAbandonment(ctx, sessionID, now)
	}
}

func (s *Scheduler) activeSessions(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]string, 0, len(s.lastSeen))
	for sessionID, seen := range s.lastSeen {
		if now.Sub(seen) > sessionIdle {
			delete(s.lastSeen, sessionID)
			continue
		}
		active = append(active, sessionID)
	}
	return active
}

func (s *Scheduler) checkSlots(ctx context.Context, sessionID string, now time.Time) {
	marker, _, err := s.store.Get(ctx, sessionID, session.KeySlotMarker)
	if err != nil {
		s.logger.Debug("slot marker read failed", "session_id", sessionID, "error", err)
		return
	}

	for _, slot := range s.slots {
		if !slot.Due(now) || marker == slot.Marker(now) {
			continue
		}

		notification := Notification{
			EventType: event.EventNotificationScheduled,
			SlotID:    slot.ID,
			Title:     slot.Title,
			Body:      slot.Body,
			Icon:      slot.Icon,
		}
		if err := s.notifier.Send(ctx, sessionID, notification); err != nil {
			s.logger.Debug("slot notification failed", "session_id", sessionID, "slot", slot.ID, "error", err)
			continue
		}

		if err := s.store.Set(ctx, sessionID, session.KeySlotMarker, slot.Marker(now)); err != nil {
			s.logger.Debug("slot marker write failed", "session_id", sessionID, "error", err)
		}
	}
}

func (s *Scheduler) checkAbandonment(ctx context.Context, sessionID string, now time.Time) {
	snapshot := s.carts.Snapshot(ctx, sessionID)
	if snapshot.Empty() {
		return
	}

	activityRaw, found, err := s.store.Get(ctx, sessionID, session.KeyCartActivity)
	if err != nil || !found {
		return
	}
	activity, err := strconv.ParseInt(activityRaw, 10, 64)
	if err != nil {
		return
	}
	if now.Sub(time.UnixMilli(activity)) <= AbandonmentDelay {
		return
	}

	// The activity timestamp doubles as the dedup key: a new cart
	// mutation rewrites it and re-arms the reminder.
	sent, _, err := s.store.Get(ctx, sessionID, session.KeyReminderSent)
	if err != nil || sent == activityRaw {
		return
	}

	notification := Notification{
		EventType: event.EventNotificationCartWaiting,
		Title:     "🛒 Your Cart is Waiting!",
		Body:      reminderBody(len(snapshot)),
	}
	if err := s.notifier.Send(ctx, sessionID, notification); err != nil {
		s.logger.Debug("cart reminder failed", "session_id", sessionID, "error", err)
		return
	}

	if err := s.store.Set(ctx, sessionID, session.KeyReminderSent, activityRaw); err != nil {
		s.logger.Debug("reminder marker write failed", "session_id", sessionID, "error", err)
	}
}

func reminderBody(count int) string {
	plural := ""
	if count > 1 {
		plural = "s"
	}
	return fmt.Sprintf("You have %d delicious item%s in your cart. Complete your order now!", count, plural)
}
