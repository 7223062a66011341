package event

import "time"

const (
	OrdersTopic      = "storefront.orders"
	EventOrderPlaced = "order.placed"
)

// OrderPlacedEvent is published when a checkout completes. The audit
// subscriber records it, keeping a server-side trace of each WhatsApp handoff.
type OrderPlacedEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	EventID    string    `json:"event_id"`
	SessionID  string    `json:"session_id"`

	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	ItemCount     int     `json:"item_count"`
	Total         float64 `json:"total"`

	// Denormalized line summaries for dashboards
	Lines []OrderPlacedLine `json:"lines"`
}

type OrderPlacedLine struct {
	Name     string  `json:"name"`
	Portion  string  `json:"portion"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}
