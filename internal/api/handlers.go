package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ordercore/internal/book"
)

// ErrInvalidAmount and ErrMissingPrice are the malformed-order kinds the
// adapter rejects before ever calling Submit. The core itself performs no
// validation — see SPEC_FULL.md §7 — so this is the only gate an order
// passes through.
var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrMissingPrice  = errors.New("limit order requires a price")
)

// validateOrder rejects malformed orders: a non-positive amount, or a Limit
// order with no price. Market orders may omit price.
func validateOrder(order book.Order) error {
	if order.Amount <= 0 {
		return ErrInvalidAmount
	}
	if order.Kind == book.Limit && order.Price == nil {
		return ErrMissingPrice
	}
	return nil
}

// OrderSubmitter is the slice of the matching engine the API depends on for
// admitting new orders.
type OrderSubmitter interface {
	Submit(order book.Order, now time.Time) []book.Trade
}

// QuerySurface is the slice of the matching engine the API depends on for
// read-only views of the book.
type QuerySurface interface {
	AllOrders() []book.Order
	AllBids() []book.Order
	AllAsks() []book.Order
}

// Handlers holds the dependencies every HTTP handler needs.
type Handlers struct {
	engine OrderSubmitter
	query  QuerySurface
	hub    WebSocketHandler
	logger zerolog.Logger
}

// WebSocketHandler upgrades a request onto the trade stream. *stream.Hub
// satisfies this.
type WebSocketHandler interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

// NewHandlers builds the handler set.
func NewHandlers(engine OrderSubmitter, query QuerySurface, hub WebSocketHandler) *Handlers {
	return &Handlers{
		engine: engine,
		query:  query,
		hub:    hub,
		logger: log.With().Str("component", "api-handlers").Logger(),
	}
}

// HandleHealthcheck reports process liveness.
func (h *Handlers) HandleHealthcheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Server is up and running!"))
}

// HandleOrders dispatches POST /orders (submit) and GET /orders (query) onto
// the same resource, mirroring the upstream engine's single-resource
// convention.
func (h *Handlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createOrder(w, r)
	case http.MethodGet:
		writeJSON(w, h.logger, h.query.AllOrders())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var order book.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "invalid order payload", http.StatusBadRequest)
		return
	}

	if err := validateOrder(order); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	trades := h.engine.Submit(order, time.Now())
	h.logger.Info().
		Uint64("order_id", order.ID).
		Int("fills", len(trades)).
		Msg("order submitted")

	writeJSON(w, h.logger, trades)
}

// HandleBids serves GET /bids.
func (h *Handlers) HandleBids(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, h.query.AllBids())
}

// HandleAsks serves GET /asks.
func (h *Handlers) HandleAsks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, h.query.AllAsks())
}

// HandleWebSocket serves GET /ws, handing the upgrade off to the trade hub.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}

func writeJSON(w http.ResponseWriter, logger zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
