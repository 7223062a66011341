package notify

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"

	"github.com/ulmind-com/spice-heaven/internal/session"
	"github.com/ulmind-com/spice-heaven/pkg/event"
)

// Permission mirrors the browser Notification.permission states.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Render delays the web client applied before prompting, passed back as
// hints so the frontend keeps the same pacing.
const (
	bannerDelayMS     = 1500
	autoPromptDelayMS = 3000
)

// State is what the frontend needs to render the permission UI.
type State struct {
	Permission    Permission `json:"permission"`
	ShouldPrompt  bool       `json:"should_prompt"`
	ShowBanner    bool       `json:"show_banner"`
	PromptDelayMS int        `json:"prompt_delay_ms,omitempty"`
	BannerDelayMS int        `json:"banner_delay_ms,omitempty"`
}

// PermissionService tracks each session's notification opt-in. A denial
// is final: the auto prompt fires at most once per session and never
// again after the user said no.
type PermissionService struct {
	store    session.Store
	notifier Notifier
	logger   apt.Logger
}

func NewPermissionService(store session.Store, notifier Notifier, logger apt.Logger) *PermissionService {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &PermissionService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// State reads the session's permission, whether the one-time auto prompt
// is still owed, and whether the opt-in banner should show.
func (s *PermissionService) State(ctx context.Context, sessionID string) (State, error) {
	permission, err := s.permission(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	if permission != PermissionDefault {
		return State{Permission: permission}, nil
	}

	_, asked, err := s.store.Get(ctx, sessionID, session.KeyPromptAsked)
	if err != nil {
		return State{}, fmt.Errorf("failed to read prompt marker: %w", err)
	}

	_, bannerClosed, err := s.store.Get(ctx, sessionID, session.KeyBannerClosed)
	if err != nil {
		return State{}, fmt.Errorf("failed to read banner marker: %w", err)
	}

	state := State{
		Permission:   permission,
		ShouldPrompt: !asked,
		ShowBanner:   !bannerClosed,
	}
	if state.ShouldPrompt {
		state.PromptDelayMS = autoPromptDelayMS
	}
	if state.ShowBanner {
		state.BannerDelayMS = bannerDelayMS
	}
	return state, nil
}

// Enable records the grant and sends the confirmation notification. The
// confirmation is best-effort; a delivery failure does not undo the grant.
func (s *PermissionService) Enable(ctx context.Context, sessionID string) (State, error) {
	if err := s.store.Set(ctx, sessionID, session.KeyPermission, string(PermissionGranted)); err != nil {
		return State{}, fmt.Errorf("failed to record permission grant: %w", err)
	}
	if err := s.store.Set(ctx, sessionID, session.KeyPromptAsked, "true"); err != nil {
		return State{}, fmt.Errorf("failed to record prompt marker: %w", err)
	}

	confirmation := Notification{
		EventType: event.EventNotificationEnabled,
		Title:     "🎉 Notifications Enabled!",
		Body:      "You'll now receive updates about daily deals, special offers, and cart reminders!",
	}
	if err := s.notifier.Send(ctx, sessionID, confirmation); err != nil {
		s.logger.Debug("confirmation notification failed", "session_id", sessionID, "error", err)
	}

	return State{Permission: PermissionGranted}, nil
}

// Decline records the denial. The session will never be prompted again.
func (s *PermissionService) Decline(ctx context.Context, sessionID string) (State, error) {
	if err := s.store.Set(ctx, sessionID, session.KeyPermission, string(PermissionDenied)); err != nil {
		return State{}, fmt.Errorf("failed to record permission denial: %w", err)
	}
	if err := s.store.Set(ctx, sessionID, session.KeyPromptAsked, "true"); err != nil {
		return State{}, fmt.Errorf("failed to record prompt marker: %w", err)
	}
	return State{Permission: PermissionDenied}, nil
}

// DismissBanner hides the opt-in banner without touching the permission.
func (s *PermissionService) DismissBanner(ctx context.Context, sessionID string) error {
	if err := s.store.Set(ctx, sessionID, session.KeyBannerClosed, "true"); err != nil {
		return fmt.Errorf("failed to record banner dismissal: %w", err)
	}
	return nil
}

// Granted reports whether the session has opted in to notifications.
func (s *PermissionService) Granted(ctx context.Context, sessionID string) bool {
	permission, err := s.permission(ctx, sessionID)
	if err != nil {
		s.logger.Debug("permission read failed", "session_id", sessionID, "error", err)
		return false
	}
	return permission == PermissionGranted
}

func (s *PermissionService) permission(ctx context.Context, sessionID string) (Permission, error) {
	raw, found, err := s.store.Get(ctx, sessionID, session.KeyPermission)
	if err != nil {
		return PermissionDefault, fmt.Errorf("failed to read permission: %w", err)
	}
	if !found {
		return PermissionDefault, nil
	}

	switch Permission(raw) {
	case PermissionGranted, PermissionDenied:
		return Permission(raw), nil
	default:
		return PermissionDefault, nil
	}
}
