package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/ulmind-com/spice-heaven/pkg/event"
)

// OrderRecorder persists placed-order events.
type OrderRecorder interface {
	Save(ctx context.Context, evt event.OrderPlacedEvent) error
}

// AuditSubscriber consumes placed-order events and records them, so the
// restaurant keeps a server-side trail of checkouts handed off to WhatsApp.
type AuditSubscriber struct {
	subscriber events.Subscriber
	records    OrderRecorder
	logger     apt.Logger
}

func NewAuditSubscriber(sub events.Subscriber, records OrderRecorder, logger apt.Logger) *AuditSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &AuditSubscriber{
		subscriber: sub,
		records:    records,
		logger:     logger,
	}
}

func (s *AuditSubscriber) Start(ctx context.Context) error {
	s.log().Info("starting order audit subscriber", "topic", event.OrdersTopic)
	if s.subscriber == nil {
		return fmt.Errorf("order audit subscriber not configured")
	}
	return s.subscriber.Subscribe(ctx, event.OrdersTopic, s.handleEvent)
}

func (s *AuditSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var evt event.OrderPlacedEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.log().Info("invalid order event", "error", err)
		return nil
	}

	if evt.EventType != event.EventOrderPlaced {
		s.log().Debug("unknown order event type", "event_type", evt.EventType)
		return nil
	}

	if evt.EventID == "" {
		s.log().Info("order event missing event_id", "session_id", evt.SessionID)
		return nil
	}

	if err := s.records.Save(ctx, evt); err != nil {
		s.log().Info("failed to record order", "event_id", evt.EventID, "error", err)
		return err
	}

	s.log().Info("order recorded",
		"event_id", evt.EventID,
		"session_id", evt.SessionID,
		"item_count", evt.ItemCount,
		"total", evt.Total,
	)
	return nil
}

func (s *AuditSubscriber) log() apt.Logger {
	return s.logger.With("component", "AuditSubscriber")
}
