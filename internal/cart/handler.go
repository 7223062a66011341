package cart

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ulmind-com/spice-heaven/internal/menu"
	"github.com/ulmind-com/spice-heaven/pkg/enums/portion"
)

const MaxBodyBytes = 1 << 20

// SessionToucher is notified whenever a session shows activity, so the
// notification scheduler can tick it immediately (the focus-regain analog).
type SessionToucher interface {
	Touch(sessionID string)
}

type Handler struct {
	service *Service
	catalog *menu.Catalog
	toucher SessionToucher
	logger  apt.Logger
	config  *apt.Config
	tlm     *telemetry.HTTP
}

func NewHandler(service *Service, catalog *menu.Catalog, toucher SessionToucher, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		service: service,
		catalog: catalog,
		toucher: toucher,
		logger:  logger,
		config:  config,
		tlm:     telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions/{sessionID}/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)

		r.Route("/items", func(r chi.Router) {
			r.Post("/", h.AddItem)
			r.Put("/{index}", h.UpdateQuantity)
			r.Delete("/{index}", h.RemoveItem)
		})
	})
}

type cartView struct {
	Lines     Snapshot `json:"lines"`
	Total     float64  `json:"total"`
	ItemCount int      `json:"item_count"`
}

type mutationView struct {
	Status Status   `json:"status"`
	Cart   cartView `json:"cart"`
}

type addItemRequest struct {
	ShortCode string `json:"short_code"`
	Quantity  int    `json:"quantity"`
	Portion   string `json:"portion"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /sessions/{sessionID}/cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetCart")
	defer finish()

	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}

	h.touch(sessionID)

	snapshot := h.service.Snapshot(r.Context(), sessionID)
	apt.RespondSuccess(w, h.view(snapshot))
}

// AddItem handles POST /sessions/{sessionID}/cart/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if !h.decode(w, r, &req, log) {
		return
	}

	item, found := h.catalog.Item(req.ShortCode)
	if !found {
		log.Debug("unknown menu item in add request", "short_code", req.ShortCode)
		apt.RespondError(w, http.StatusBadRequest, "Unknown menu item")
		return
	}

	p := portion.Portions.Full
	if req.Portion != "" {
		resolved := portion.ByName(req.Portion)
		if resolved == nil {
			log.Debug("invalid portion in add request", "portion", req.Portion)
			apt.RespondError(w, http.StatusBadRequest, "Portion must be full or half")
			return
		}
		p = *resolved
	}

	status := h.service.Add(ctx, sessionID, item, req.Quantity, p)
	h.touch(sessionID)

	snapshot := h.service.Snapshot(ctx, sessionID)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, mutationView{Status: status, Cart: h.view(snapshot)})
}

// UpdateQuantity handles PUT /sessions/{sessionID}/cart/items/{index}
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateQuantity")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}

	index, ok := h.parseIndexParam(w, r, log)
	if !ok {
		return
	}

	var req setQuantityRequest
	if !h.decode(w, r, &req, log) {
		return
	}

	status := h.service.SetQuantity(ctx, sessionID, index, req.Quantity)
	h.touch(sessionID)

	snapshot := h.service.Snapshot(ctx, sessionID)
	apt.RespondSuccess(w, mutationView{Status: status, Cart: h.view(snapshot)})
}

// RemoveItem handles DELETE /sessions/{sessionID}/cart/items/{index}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}

	index, ok := h.parseIndexParam(w, r, log)
	if !ok {
		return
	}

	status := h.service.Remove(ctx, sessionID, index)
	h.touch(sessionID)

	snapshot := h.service.Snapshot(ctx, sessionID)
	apt.RespondSuccess(w, mutationView{Status: status, Cart: h.view(snapshot)})
}

// ClearCart handles DELETE /sessions/{sessionID}/cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ClearCart")
	defer finish()

	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}

	status := h.service.Clear(r.Context(), sessionID)
	h.touch(sessionID)

	apt.RespondSuccess(w, mutationView{Status: status, Cart: h.view(nil)})
}

func (h *Handler) view(snapshot Snapshot) cartView {
	if snapshot == nil {
		snapshot = Snapshot{}
	}
	return cartView{
		Lines:     snapshot,
		Total:     snapshot.TotalPrice(),
		ItemCount: snapshot.ItemCount(),
	}
}

func (h *Handler) touch(sessionID string) {
	if h.toucher != nil {
		h.toucher.Touch(sessionID)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, out interface{}, log apt.Logger) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		log.Debug("cannot read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Cannot read request body")
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Debug("cannot parse request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}
	return true
}

func (h *Handler) parseSessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := uuid.Parse(sessionID); err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid session id")
		return "", false
	}
	return sessionID, true
}

func (h *Handler) parseIndexParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (int, bool) {
	indexStr := chi.URLParam(r, "index")
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		log.Debug("invalid index parameter", "index", indexStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid index parameter")
		return 0, false
	}
	return index, true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
