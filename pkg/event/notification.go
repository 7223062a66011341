package event

import "time"

const (
	NotificationsTopic = "storefront.notifications"

	EventNotificationScheduled   = "notification.slot"
	EventNotificationCartWaiting = "notification.cart_reminder"
	EventNotificationEnabled     = "notification.enabled"
)

// PushNotificationEvent is the payload handed to the push relay. It mirrors
// the browser Notification options: a fixed tag so payloads for the same
// session coalesce in the OS tray, a dismiss-after hint and a sound-cue flag.
type PushNotificationEvent struct {
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	SessionID    string    `json:"session_id"`
	SlotID       string    `json:"slot_id,omitempty"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Icon         string    `json:"icon,omitempty"`
	Tag          string    `json:"tag"`
	DismissAfter int       `json:"dismiss_after_seconds"`
	PlaySound    bool      `json:"play_sound"`
}
