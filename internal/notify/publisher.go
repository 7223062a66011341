package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/appetiteclub/apt/events"

	"github.com/ulmind-com/spice-heaven/pkg/event"
)

// Relay is the production Notifier. It serializes payloads onto the
// notifications topic; the push gateway on the other end owns actual
// browser delivery.
type Relay struct {
	publisher events.Publisher
}

func NewRelay(publisher events.Publisher) *Relay {
	return &Relay{publisher: publisher}
}

func (r *Relay) Send(ctx context.Context, sessionID string, n Notification) error {
	icon := n.Icon
	if icon == "" {
		icon = DefaultIcon
	}

	payload := event.PushNotificationEvent{
		EventType:    n.EventType,
		OccurredAt:   time.Now().UTC(),
		SessionID:    sessionID,
		SlotID:       n.SlotID,
		Title:        n.Title,
		Body:         n.Body,
		Icon:         icon,
		Tag:          NotificationTag,
		DismissAfter: DismissAfterSeconds,
		PlaySound:    true,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	if err := r.publisher.Publish(ctx, event.NotificationsTopic, data); err != nil {
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	return nil
}
