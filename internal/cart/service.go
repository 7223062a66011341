package cart

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/ulmind-com/spice-heaven/internal/menu"
	"github.com/ulmind-com/spice-heaven/internal/session"
	"github.com/ulmind-com/spice-heaven/pkg"
	"github.com/ulmind-com/spice-heaven/pkg/enums/portion"
)

// TTL is how long a persisted cart survives, measured from the moment the
// first item was added in the session, not from the last modification. A
// cart touched at 1:59 still expires at 2:00.
const TTL = 2 * time.Hour

// Status is the outcome of a cart mutation. Out-of-range and below-minimum
// requests are legitimate outcomes, not errors; storage failures degrade to
// an empty cart and are never surfaced.
type Status string

const (
	StatusApplied Status = "applied"
	StatusClamped Status = "clamped"
	StatusIgnored Status = "ignored"
)

// Service is the session-scoped cart store. Every mutation loads the
// current snapshot, applies the change, and persists the result; the
// session store is the single source of truth so concurrent service
// instances observe each other's writes.
type Service struct {
	store  session.Store
	clock  pkg.Clock
	logger apt.Logger
}

func NewService(store session.Store, clock pkg.Clock, logger apt.Logger) *Service {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if clock == nil {
		clock = pkg.NewSystemClock()
	}
	return &Service{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Snapshot returns the current cart, discarding it entirely if its TTL has
// elapsed. Storage failures read as an empty cart.
func (s *Service) Snapshot(ctx context.Context, sessionID string) Snapshot {
	raw, ok, err := s.store.Get(ctx, sessionID, session.KeyCartLines)
	if err != nil {
		s.logger.Debug("cart load failed, treating as empty", "session_id", sessionID, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	createdRaw, ok, err := s.store.Get(ctx, sessionID, session.KeyCartCreated)
	if err != nil || !ok {
		s.discard(ctx, sessionID)
		return nil
	}

	created, err := strconv.ParseInt(createdRaw, 10, 64)
	if err != nil {
		s.discard(ctx, sessionID)
		return nil
	}

	if s.clock.Now().Sub(time.UnixMilli(created)) > TTL {
		s.logger.Debug("cart expired, discarding", "session_id", sessionID)
		s.discard(ctx, sessionID)
		return nil
	}

	var lines Snapshot
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logger.Debug("cart payload corrupt, discarding", "session_id", sessionID, "error", err)
		s.discard(ctx, sessionID)
		return nil
	}
	return lines
}

// Add appends a new line. Identical items are not merged; each add keeps
// its own line. Quantity is floored to 1 and a half portion silently falls
// back to full when the item has no half price.
func (s *Service) Add(ctx context.Context, sessionID string, item menu.MenuItem, quantity int, p portion.Portion) Status {
	status := StatusApplied
	if quantity < 1 {
		quantity = 1
		status = StatusClamped
	}
	if p.Name == portion.Portions.Half.Name && !item.HasHalf() {
		p = portion.Portions.Full
		status = StatusClamped
	}

	lines := s.Snapshot(ctx, sessionID)
	lines = append(lines, Line{Item: item, Quantity: quantity, Portion: p.Name})
	s.save(ctx, sessionID, lines)
	return status
}

// Remove deletes the line at index. Out-of-range indexes are a no-op.
func (s *Service) Remove(ctx context.Context, sessionID string, index int) Status {
	lines := s.Snapshot(ctx, sessionID)
	if index < 0 || index >= len(lines) {
		return StatusIgnored
	}

	lines = append(lines[:index], lines[index+1:]...)
	s.save(ctx, sessionID, lines)
	return StatusApplied
}

// SetQuantity updates the line at index, flooring the quantity at 1. A UI
// may request a decrement below one; the store clamps instead of removing.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, index, quantity int) Status {
	lines := s.Snapshot(ctx, sessionID)
	if index < 0 || index >= len(lines) {
		return StatusIgnored
	}

	status := StatusApplied
	if quantity < 1 {
		quantity = 1
		status = StatusClamped
	}

	lines[index].Quantity = quantity
	s.save(ctx, sessionID, lines)
	return status
}

// Clear empties the cart and erases the persisted snapshot immediately.
func (s *Service) Clear(ctx context.Context, sessionID string) Status {
	s.discard(ctx, sessionID)
	return StatusApplied
}

// save persists the line list and maintains the session's timers: the TTL
// anchor is written once when the cart turns non-empty, while the activity
// timestamp is rewritten on every content change (re-arming the abandonment
// reminder). An empty result erases everything.
func (s *Service) save(ctx context.Context, sessionID string, lines Snapshot) {
	if lines.Empty() {
		s.discard(ctx, sessionID)
		return
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		s.logger.Debug("cart marshal failed, keeping previous snapshot", "session_id", sessionID, "error", err)
		return
	}

	now := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)

	if err := s.store.Set(ctx, sessionID, session.KeyCartLines, string(payload)); err != nil {
		s.logger.Debug("cart save failed", "session_id", sessionID, "error", err)
		return
	}

	if _, ok, err := s.store.Get(ctx, sessionID, session.KeyCartCreated); err == nil && !ok {
		if err := s.store.Set(ctx, sessionID, session.KeyCartCreated, now); err != nil {
			s.logger.Debug("cart anchor save failed", "session_id", sessionID, "error", err)
		}
	}

	if err := s.store.Set(ctx, sessionID, session.KeyCartActivity, now); err != nil {
		s.logger.Debug("cart activity save failed", "session_id", sessionID, "error", err)
	}
	if err := s.store.Delete(ctx, sessionID, session.KeyReminderSent); err != nil {
		s.logger.Debug("reminder marker reset failed", "session_id", sessionID, "error", err)
	}
}

func (s *Service) discard(ctx context.Context, sessionID string) {
	err := s.store.Delete(ctx, sessionID,
		session.KeyCartLines,
		session.KeyCartCreated,
		session.KeyCartActivity,
		session.KeyReminderSent,
	)
	if err != nil {
		s.logger.Debug("cart discard failed", "session_id", sessionID, "error", err)
	}
}
