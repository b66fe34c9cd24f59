// Package stream fans a single ordered feed of trades out to many
// subscribers. The engine publishes into the Hub synchronously from inside
// Submit, so the Hub must never block the engine: every subscriber gets its
// own bounded queue, and a subscriber that falls behind is disconnected
// rather than allowed to stall the matching loop.
package stream

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"ordercore/internal/book"
)

// subscriberQueueSize bounds how many trades a slow subscriber may lag by
// before the hub drops it.
const subscriberQueueSize = 256

// Hub broadcasts trades to a dynamic set of subscribers. It satisfies
// engine.TradeSink.
type Hub struct {
	register       chan *Subscription
	unregister     chan *Subscription
	broadcast      chan book.Trade
	allowedOrigins []string
	logger         zerolog.Logger
	t              tomb.Tomb
}

// Subscription is one consumer's bounded view of the trade feed. Trades is
// closed when the hub drops the subscription, whether by Unsubscribe or by
// the subscriber falling behind.
type Subscription struct {
	ID     uuid.UUID
	Trades chan book.Trade
	hub    *Hub
}

// NewHub constructs a Hub. allowedOrigins configures ServeWS's WebSocket
// origin check: when empty, same-host and localhost origins are permitted
// and all others rejected. Run must be called (typically in its own
// goroutine) before Publish or Subscribe have any effect.
func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		register:       make(chan *Subscription),
		unregister:     make(chan *Subscription),
		broadcast:      make(chan book.Trade, subscriberQueueSize),
		allowedOrigins: allowedOrigins,
		logger:         log.With().Str("component", "stream-hub").Logger(),
	}
}

// Run drives the hub's dispatch loop under tomb supervision until Kill is
// called, blocking until the loop has exited.
func (h *Hub) Run() error {
	h.t.Go(h.run)
	return h.t.Wait()
}

// Kill requests the hub's loop to stop and disconnects every subscriber.
func (h *Hub) Kill() {
	h.t.Kill(nil)
}

func (h *Hub) run() error {
	subs := make(map[*Subscription]bool)
	for {
		select {
		case <-h.t.Dying():
			for sub := range subs {
				close(sub.Trades)
			}
			return nil

		case sub := <-h.register:
			subs[sub] = true
			h.logger.Debug().Stringer("subscriber", sub.ID).Int("subscribers", len(subs)).Msg("subscriber joined")

		case sub := <-h.unregister:
			if subs[sub] {
				delete(subs, sub)
				close(sub.Trades)
				h.logger.Debug().Stringer("subscriber", sub.ID).Int("subscribers", len(subs)).Msg("subscriber left")
			}

		case trade := <-h.broadcast:
			for sub := range subs {
				select {
				case sub.Trades <- trade:
				default:
					close(sub.Trades)
					delete(subs, sub)
					h.logger.Warn().Stringer("subscriber", sub.ID).Msg("subscriber too slow, dropped")
				}
			}
		}
	}
}

// Publish enqueues a trade for dispatch to every current subscriber. It
// satisfies engine.TradeSink. Publish never blocks on a subscriber — only on
// the hub's own internal broadcast queue, which is sized generously against
// the engine's single-goroutine Submit path.
func (h *Hub) Publish(trade book.Trade) {
	select {
	case h.broadcast <- trade:
	case <-h.t.Dying():
	}
}

// Subscribe registers a new subscriber and returns its Subscription. The
// caller should range over Trades until the channel closes, then stop.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{ID: uuid.New(), Trades: make(chan book.Trade, subscriberQueueSize), hub: h}
	select {
	case h.register <- sub:
	case <-h.t.Dying():
		close(sub.Trades)
	}
	return sub
}

// Unsubscribe removes a subscription, closing its Trades channel. Safe to
// call more than once or after the hub has already dropped the subscriber.
func (sub *Subscription) Unsubscribe() {
	select {
	case sub.hub.unregister <- sub:
	case <-sub.hub.t.Dying():
	}
}
