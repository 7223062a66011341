// Package session defines the persistent key-value store every browser
// session's state lives in. The cart and notification packages read and
// write through it; implementations live elsewhere (internal/mongo in
// production, in-memory fakes in tests).
package session

import "context"

// Keys persisted per session. Values are plain strings; timestamps are
// stored as unix milliseconds to match what the web client wrote.
const (
	KeyCartLines    = "cart:lines"
	KeyCartCreated  = "cart:created"
	KeyCartActivity = "cart:activity"
	KeySlotMarker   = "notify:slot"
	KeyReminderSent = "notify:reminder"
	KeyPermission   = "notify:permission"
	KeyPromptAsked  = "notify:asked"
	KeyBannerClosed = "notify:banner"
)

// Store is the per-session key-value capability. Get reports presence
// explicitly so callers can distinguish "absent" from "empty string".
// Implementations must tolerate unknown sessions and keys.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
}
