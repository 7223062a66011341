package order

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ulmind-com/spice-heaven/internal/cart"
	"github.com/ulmind-com/spice-heaven/internal/geo"
	"github.com/ulmind-com/spice-heaven/internal/hours"
	"github.com/ulmind-com/spice-heaven/pkg/event"
)

const MaxBodyBytes = 1 << 20

// HoursGate answers whether the restaurant currently accepts orders.
type HoursGate interface {
	Refresh() hours.Status
}

// SessionToucher registers request activity with the scheduler.
type SessionToucher interface {
	Touch(sessionID string)
}

// Handler drives checkout: it gates on opening hours, validates the
// delivery details, composes the WhatsApp hand-off and clears the cart.
type Handler struct {
	carts     *cart.Service
	composer  *Composer
	gate      HoursGate
	geocoder  geo.ReverseGeocoder
	publisher events.Publisher
	toucher   SessionToucher
	logger    apt.Logger
	tlm       *telemetry.HTTP
}

func NewHandler(carts *cart.Service, composer *Composer, gate HoursGate, geocoder geo.ReverseGeocoder, publisher events.Publisher, toucher SessionToucher, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		carts:     carts,
		composer:  composer,
		gate:      gate,
		geocoder:  geocoder,
		publisher: publisher,
		toucher:   toucher,
		logger:    logger,
		tlm:       telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions/{sessionID}/checkout", h.Checkout)
}

type checkoutRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Instructions string `json:"instructions"`
	Location     *struct {
		Lat   float64 `json:"lat"`
		Lng   float64 `json:"lng"`
		Label string  `json:"label"`
	} `json:"location"`
}

type checkoutView struct {
	Message     string  `json:"message"`
	WhatsAppURL string  `json:"whatsapp_url"`
	Total       float64 `json:"total"`
	ItemCount   int     `json:"item_count"`
}

// Checkout handles POST /sessions/{sessionID}/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Checkout")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sessionID := chi.URLParam(r, "sessionID")
	if _, err := uuid.Parse(sessionID); err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid session id")
		return
	}
	if h.toucher != nil {
		h.toucher.Touch(sessionID)
	}

	var req checkoutRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		log.Debug("cannot decode checkout request", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if status := h.gate.Refresh(); !status.Open {
		log.Debug("checkout rejected, restaurant closed", "session_id", sessionID, "next_open", status.NextOpenLabel)
		apt.Respond(w, http.StatusConflict, map[string]interface{}{
			"error": "Restaurant is currently closed",
			"hours": status,
		}, nil)
		return
	}

	snapshot := h.carts.Snapshot(ctx, sessionID)
	if snapshot.Empty() {
		apt.RespondError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	address := Address{
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		Instructions: req.Instructions,
	}
	address.Normalize()

	if validationErrors := ValidateAddress(&address); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		h.respondValidationErrors(w, validationErrors)
		return
	}

	if req.Location != nil {
		label := req.Location.Label
		if label == "" {
			label = h.geocoder.ReverseGeocode(ctx, req.Location.Lat, req.Location.Lng)
		}
		address.Location = &Location{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Address: label,
		}
	}

	message := h.composer.Compose(snapshot, address)
	view := checkoutView{
		Message:     message,
		WhatsAppURL: h.composer.OrderURL(message),
		Total:       snapshot.TotalPrice(),
		ItemCount:   snapshot.ItemCount(),
	}

	h.publishOrderPlaced(ctx, sessionID, snapshot, address, log)
	h.carts.Clear(ctx, sessionID)

	log.Info("Order composed", "session_id", sessionID, "items", view.ItemCount, "total", view.Total)
	apt.RespondSuccess(w, view)
}

// publishOrderPlaced is best-effort; checkout succeeds even when the
// event cannot be published.
func (h *Handler) publishOrderPlaced(ctx context.Context, sessionID string, snapshot cart.Snapshot, address Address, log apt.Logger) {
	if h.publisher == nil {
		return
	}

	lines := make([]event.OrderPlacedLine, 0, len(snapshot))
	for _, line := range snapshot {
		lines = append(lines, event.OrderPlacedLine{
			Name:     line.Item.Name,
			Portion:  line.Portion,
			Quantity: line.Quantity,
			Subtotal: line.Subtotal(),
		})
	}

	placed := event.OrderPlacedEvent{
		EventType:     event.EventOrderPlaced,
		OccurredAt:    time.Now().UTC(),
		EventID:       uuid.NewString(),
		SessionID:     sessionID,
		CustomerName:  address.Name,
		CustomerPhone: address.Phone,
		ItemCount:     snapshot.ItemCount(),
		Total:         snapshot.TotalPrice(),
		Lines:         lines,
	}

	data, err := json.Marshal(placed)
	if err != nil {
		log.Error("cannot marshal order event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.OrdersTopic, data); err != nil {
		log.Error("cannot publish order event", "error", err)
	}
}

func (h *Handler) respondValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "Validation failed",
		"errors": errors,
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
