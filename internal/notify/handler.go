package notify

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionToucher registers request activity with the scheduler.
type SessionToucher interface {
	Touch(sessionID string)
}

// Handler exposes the notification permission endpoints.
type Handler struct {
	perms   *PermissionService
	toucher SessionToucher
	logger  apt.Logger
	tlm     *telemetry.HTTP
}

func NewHandler(perms *PermissionService, toucher SessionToucher, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		perms:   perms,
		toucher: toucher,
		logger:  logger,
		tlm:     telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions/{sessionID}/notifications", func(r chi.Router) {
		r.Get("/permission", h.GetState)
		r.Post("/enable", h.Enable)
		r.Post("/decline", h.Decline)
		r.Post("/banner/dismiss", h.DismissBanner)
	})
}

// GetState handles GET /sessions/{sessionID}/notifications/permission
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetState")
	defer finish()

	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}
	h.touch(sessionID)

	state, err := h.perms.State(r.Context(), sessionID)
	if err != nil {
		h.log(r).Error("Failed to read notification state", "session_id", sessionID, "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to read notification state")
		return
	}

	apt.RespondSuccess(w, state)
}

// Enable handles POST /sessions/{sessionID}/notifications/enable
func (h *Handler) Enable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Enable")
	defer finish()

	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}
	h.touch(sessionID)

	state, err := h.perms.Enable(r.Context(), sessionID)
	if err != nil {
		h.log(r).Error("Failed to enable notifications", "session_id", sessionID, "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to enable notifications")
		return
	}

	apt.RespondSuccess(w, state)
}

// Decline handles POST /sessions/{sessionID}/notifications/decline
func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Decline")
	defer finish()

	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}
	h.touch(sessionID)

	state, err := h.perms.Decline(r.Context(), sessionID)
	if err != nil {
		h.log(r).Error("Failed to record notification denial", "session_id", sessionID, "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to record notification denial")
		return
	}

	apt.RespondSuccess(w, state)
}

// DismissBanner handles POST /sessions/{sessionID}/notifications/banner/dismiss
func (h *Handler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DismissBanner")
	defer finish()

	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}
	h.touch(sessionID)

	if err := h.perms.DismissBanner(r.Context(), sessionID); err != nil {
		h.log(r).Error("Failed to dismiss banner", "session_id", sessionID, "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to dismiss banner")
		return
	}

	apt.RespondSuccess(w, map[string]bool{"dismissed": true})
}

func (h *Handler) touch(sessionID string) {
	if h.toucher != nil {
		h.toucher.Touch(sessionID)
	}
}

func (h *Handler) parseSessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := uuid.Parse(sessionID); err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid session id")
		return "", false
	}
	return sessionID, true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
