package menu

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
)

// Handler serves the static catalog. The menu is reference data; there are
// no write routes.
type Handler struct {
	catalog *Catalog
	logger  apt.Logger
	config  *apt.Config
	tlm     *telemetry.HTTP
}

func NewHandler(catalog *Catalog, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		catalog: catalog,
		logger:  logger,
		config:  config,
		tlm:     telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers all routes for the menu catalog
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.GetMenu)
		r.Get("/categories", h.ListCategories)
		r.Get("/items/{shortCode}", h.GetItem)
	})
}

// GetMenu handles GET /menu
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMenu")
	defer finish()

	apt.RespondCollection(w, h.catalog.Categories(), "menu")
}

// ListCategories handles GET /menu/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCategories")
	defer finish()

	apt.RespondCollection(w, h.catalog.CategoryNames(), "menu/categories")
}

// GetItem handles GET /menu/items/{shortCode}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetItem")
	defer finish()

	log := h.log(r)

	shortCode := chi.URLParam(r, "shortCode")
	if shortCode == "" {
		log.Debug("missing shortCode parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing shortCode parameter")
		return
	}

	item, ok := h.catalog.Item(shortCode)
	if !ok {
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	apt.RespondSuccess(w, item)
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
