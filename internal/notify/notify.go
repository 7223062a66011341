// Package notify schedules the storefront's push notifications: daily
// meal-slot broadcasts and cart-abandonment reminders. Delivery goes
// through a Notifier; the production implementation relays payloads to
// the push gateway over NATS.
package notify

import (
	"context"
	"time"
)

const (
	// Tag coalesces notifications for the same session in the OS tray.
	NotificationTag = "food-delivery"

	// DefaultIcon is served by the static frontend.
	DefaultIcon = "/favicon.png"

	// DismissAfterSeconds is the auto-close hint sent with every payload.
	DismissAfterSeconds = 6

	// slotWindow is how long past its scheduled minute a slot still fires.
	slotWindow = 5

	// AbandonmentDelay is how long a cart sits untouched before a reminder.
	AbandonmentDelay = 5 * time.Minute

	// markerDateLayout matches the date string the web client embedded in
	// its dedup markers, so markers written before the migration stay valid.
	markerDateLayout = "Mon Jan 02 2006"
)

// Slot is a fixed daily broadcast window.
type Slot struct {
	ID     string
	Hour   int
	Minute int
	Title  string
	Body   string
	Icon   string
}

// Due reports whether now falls inside the slot's fire window.
func (s Slot) Due(now time.Time) bool {
	return now.Hour() == s.Hour &&
		now.Minute() >= s.Minute &&
		now.Minute() < s.Minute+slotWindow
}

// Marker is the dedup value recorded once the slot fires on a given day.
func (s Slot) Marker(now time.Time) string {
	return now.Format(markerDateLayout) + "-" + s.ID
}

// DefaultSlots are the three meal windows the restaurant broadcasts.
func DefaultSlots() []Slot {
	return []Slot{
		{
			ID:     "lunch",
			Hour:   12,
			Minute: 30,
			Title:  "🍽️ Lunchtime Cravings?",
			Body:   "Delicious biryani, curries, and more waiting for you. Order now and satisfy your hunger!",
		},
		{
			ID:     "snacks",
			Hour:   17,
			Minute: 0,
			Title:  "🍿 Evening Snack Time!",
			Body:   "Crispy pakoras, rolls, and chowmein are calling. Perfect for your evening cravings!",
		},
		{
			ID:     "dinner",
			Hour:   20,
			Minute: 30,
			Title:  "🌙 Dinner Delights Await",
			Body:   "End your day with our special dishes. Fresh, hot, and ready to be delivered!",
		},
	}
}

// Notification is one outbound push payload.
type Notification struct {
	EventType string
	SlotID    string
	Title     string
	Body      string
	Icon      string
}

// Notifier delivers a notification to a session's push channel.
type Notifier interface {
	Send(ctx context.Context, sessionID string, n Notification) error
}
