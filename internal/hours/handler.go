package hours

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	watcher *Watcher
	logger  apt.Logger
	tlm     *telemetry.HTTP
}

func NewHandler(watcher *Watcher, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		watcher: watcher,
		logger:  logger,
		tlm:     telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/hours", h.GetHours)
}

// GetHours handles GET /hours
func (h *Handler) GetHours(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetHours")
	defer finish()

	// Re-check on demand so a client resuming from suspend sees fresh state.
	apt.RespondSuccess(w, h.watcher.Refresh())
}
