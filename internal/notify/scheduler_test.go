package notify

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/ulmind-com/spice-heaven/internal/cart"
	"github.com/ulmind-com/spice-heaven/internal/menu"
	"github.com/ulmind-com/spice-heaven/internal/session"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.Local)
}

func newTestScheduler(now time.Time) (*Scheduler, *MemStore, *FakeNotifier, *FakeClock, *FakeCarts) {
	store := NewMemStore()
	notifier := &FakeNotifier{}
	clock := NewFakeClock(now)
	carts := &FakeCarts{Snapshots: map[string]cart.Snapshot{}}
	perms := NewPermissionService(store, notifier, nil)
	s := NewScheduler(store, carts, perms, notifier, clock, nil)
	return s, store, notifier, clock, carts
}

func grant(t *testing.T, store *MemStore) {
	t.Helper()
	if err := store.Set(context.Background(), testSession, session.KeyPermission, string(PermissionGranted)); err != nil {
		t.Fatalf("failed to seed permission: %v", err)
	}
}

func TestSlotDue(t *testing.T) {
	lunch := DefaultSlots()[0]

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "beforeWindow", now: at(12, 29), want: false},
		{name: "windowOpens", now: at(12, 30), want: true},
		{name: "lastMinute", now: at(12, 34), want: true},
		{name: "windowClosed", now: at(12, 35), want: false},
		{name: "wrongHour", now: at(13, 30), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lunch.Due(tt.now); got != tt.want {
				t.Errorf("Due(%s) = %v, want %v", tt.now.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestSlotFiresOncePerDay(t *testing.T) {
	s, store, notifier, clock, _ := newTestScheduler(at(12, 32))
	grant(t, store)
	s.Touch(testSession)
	ctx := context.Background()

	s.Tick(ctx)

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(sent))
	}
	if sent[0].SlotID != "lunch" {
		t.Errorf("slot = %q, want lunch", sent[0].SlotID)
	}
	if sent[0].Title != "🍽️ Lunchtime Cravings?" {
		t.Errorf("title = %q", sent[0].Title)
	}
	if got := store.Raw(testSession, session.KeySlotMarker); got != "Mon Mar 10 2025-lunch" {
		t.Errorf("slot marker = %q", got)
	}

	clock.Advance(time.Minute)
	s.Tick(ctx)
	if len(notifier.Sent()) != 1 {
		t.Error("slot fired twice in the same window")
	}
}

func TestSlotRefiresNextDay(t *testing.T) {
	s, store, notifier, clock, _ := newTestScheduler(at(12, 32))
	grant(t, store)
	s.Touch(testSession)
	ctx := context.Background()

	s.Tick(ctx)
	if len(notifier.Sent()) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(notifier.Sent()))
	}

	clock.Set(time.Date(2025, time.March, 11, 12, 32, 0, 0, time.Local))
	s.Touch(testSession)
	s.Tick(ctx)

	sent := notifier.Sent()
	if len(sent) != 2 {
		t.Fatalf("sent %d notifications across two days, want 2", len(sent))
	}
	if sent[1].SlotID != "lunch" {
		t.Errorf("slot = %q, want lunch", sent[1].SlotID)
	}
	if got := store.Raw(testSession, session.KeySlotMarker); got != "Tue Mar 11 2025-lunch" {
		t.Errorf("slot marker = %q", got)
	}
}

func TestEachSlotFiresInItsOwnWindow(t *testing.T) {
	s, store, notifier, clock, _ := newTestScheduler(at(12, 31))
	grant(t, store)
	s.Touch(testSession)
	ctx := context.Background()

	s.Tick(ctx)
	clock.Set(at(17, 2))
	s.Touch(testSession)
	s.Tick(ctx)
	clock.Set(at(20, 33))
	s.Touch(testSession)
	s.Tick(ctx)

	sent := notifier.Sent()
	if len(sent) != 3 {
		t.Fatalf("sent %d notifications, want 3", len(sent))
	}
	if sent[1].SlotID != "snacks" || sent[2].SlotID != "dinner" {
		t.Errorf("slots = %q, %q, want snacks, dinner", sent[1].SlotID, sent[2].SlotID)
	}
}

func TestSlotSkippedWithoutPermission(t *testing.T) {
	s, _, notifier, _, _ := newTestScheduler(at(12, 32))
	s.Touch(testSession)

	s.Tick(context.Background())

	if len(notifier.Sent()) != 0 {
		t.Errorf("sent %d notifications without permission, want 0", len(notifier.Sent()))
	}
}

func TestSlotSkippedForIdleSession(t *testing.T) {
	s, store, notifier, clock, _ := newTestScheduler(at(11, 0))
	grant(t, store)
	s.Touch(testSession)

	clock.Set(at(12, 32))
	s.Tick(context.Background())

	if len(notifier.Sent()) != 0 {
		t.Errorf("sent %d notifications to an idle session, want 0", len(notifier.Sent()))
	}
}

func TestCartReminderAfterInactivity(t *testing.T) {
	s, store, notifier, clock, carts := newTestScheduler(at(15, 0))
	grant(t, store)
	s.Touch(testSession)
	ctx := context.Background()

	carts.Snapshots[testSession] = cart.Snapshot{
		{Item: menu.MenuItem{ShortCode: "chicken-briyani", Name: "Chicken Biryani", Price: 120}, Quantity: 2, Portion: "full"},
	}
	activity := strconv.FormatInt(clock.Now().Add(-6*time.Minute).UnixMilli(), 10)
	store.Set(ctx, testSession, session.KeyCartActivity, activity)

	s.Tick(ctx)

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(sent))
	}
	if sent[0].Title != "🛒 Your Cart is Waiting!" {
		t.Errorf("title = %q", sent[0].Title)
	}
	if sent[0].Body != "You have 1 delicious item in your cart. Complete your order now!" {
		t.Errorf("body = %q", sent[0].Body)
	}
	if got := store.Raw(testSession, session.KeyReminderSent); got != activity {
		t.Errorf("reminder marker = %q, want %q", got, activity)
	}

	// Same inactivity stretch stays deduped.
	s.Tick(ctx)
	if len(notifier.Sent()) != 1 {
		t.Error("reminder fired twice for the same inactivity stretch")
	}
}

func TestCartReminderReArmsAfterNewActivity(t *testing.T) {
	s, store, notifier, clock, carts := newTestScheduler(at(15, 0))
	grant(t, store)
	s.Touch(testSession)
	ctx := context.Background()

	carts.Snapshots[testSession] = cart.Snapshot{
		{Item: menu.MenuItem{ShortCode: "veg-chow", Name: "Veg Chowmein", Price: 50}, Quantity: 1, Portion: "full"},
		{Item: menu.MenuItem{ShortCode: "butter-roti", Name: "Butter Roti", Price: 10}, Quantity: 4, Portion: "full"},
	}
	first := strconv.FormatInt(clock.Now().Add(-6*time.Minute).UnixMilli(), 10)
	store.Set(ctx, testSession, session.KeyCartActivity, first)
	s.Tick(ctx)

	// A cart mutation rewrites the activity timestamp.
	clock.Advance(10 * time.Minute)
	second := strconv.FormatInt(clock.Now().UnixMilli(), 10)
	store.Set(ctx, testSession, session.KeyCartActivity, second)
	store.Delete(ctx, testSession, session.KeyReminderSent)
	s.Touch(testSession)

	s.Tick(ctx)
	if len(notifier.Sent()) != 1 {
		t.Fatalf("reminder fired %d times before the new stretch elapsed", len(notifier.Sent()))
	}

	clock.Advance(6 * time.Minute)
	s.Touch(testSession)
	s.Tick(ctx)

	sent := notifier.Sent()
	if len(sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(sent))
	}
	if sent[1].Body != "You have 2 delicious items in your cart. Complete your order now!" {
		t.Errorf("body = %q", sent[1].Body)
	}
}

func TestCartReminderSkipsEmptyCart(t *testing.T) {
	s, store, notifier, clock, _ := newTestScheduler(at(15, 0))
	grant(t, store)
	s.Touch(testSession)
	ctx := context.Background()

	activity := strconv.FormatInt(clock.Now().Add(-10*time.Minute).UnixMilli(), 10)
	store.Set(ctx, testSession, session.KeyCartActivity, activity)

	s.Tick(ctx)

	if len(notifier.Sent()) != 0 {
		t.Errorf("sent %d reminders for an empty cart, want 0", len(notifier.Sent()))
	}
}

func TestCartReminderNotDueYet(t *testing.T) {
	s, store, notifier, clock, carts := newTestScheduler(at(15, 0))
	grant(t, store)
	s.Touch(testSession)
	ctx := context.Background()

	carts.Snapshots[testSession] = cart.Snapshot{
		{Item: menu.MenuItem{ShortCode: "chicken-briyani", Name: "Chicken Biryani", Price: 120}, Quantity: 1, Portion: "full"},
	}
	activity := strconv.FormatInt(clock.Now().Add(-4*time.Minute).UnixMilli(), 10)
	store.Set(ctx, testSession, session.KeyCartActivity, activity)

	s.Tick(ctx)

	if len(notifier.Sent()) != 0 {
		t.Errorf("sent %d reminders before the delay elapsed, want 0", len(notifier.Sent()))
	}
}
