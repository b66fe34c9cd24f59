// Package engine implements the matching engine: admitting an order,
// crossing it against the opposite side of the book under price-time
// priority, and parking any unfilled remainder. It is the only package in
// this module that is allowed to mutate a BookSide.
package engine

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ordercore/internal/book"
	"ordercore/internal/price"
)

// TradeSink is an append-only, ordered consumer of Trade values. A nil sink
// is valid — the engine still computes and returns trades, it simply does
// not publish them anywhere.
type TradeSink interface {
	Publish(book.Trade)
}

// Engine is a single-trading-pair matching engine guarded by one exclusive
// lock. Every mutating and read operation holds the lock for its entire
// duration; a Submit call is atomic from the outside.
type Engine struct {
	mu          sync.Mutex
	tradingPair string
	bids        *book.BookSide
	asks        *book.BookSide
	sink        TradeSink
	logger      zerolog.Logger
}

// New constructs an engine for a single trading pair. sink may be nil.
func New(tradingPair string, sink TradeSink) *Engine {
	return &Engine{
		tradingPair: tradingPair,
		bids:        book.NewBookSide(true),
		asks:        book.NewBookSide(false),
		sink:        sink,
		logger:      log.With().Str("component", "engine").Str("trading_pair", tradingPair).Logger(),
	}
}

// Submit admits order, timestamps it, crosses it against the opposite side
// of the book, and parks any limit residual. The resulting trades are
// returned and, if a sink is attached, published to it in fill order.
func (e *Engine) Submit(order book.Order, now time.Time) []book.Trade {
	e.mu.Lock()
	defer e.mu.Unlock()

	order.Timestamp = now

	opposite, own := e.sides(order.Side)

	var trades []book.Trade
	switch order.Kind {
	case book.Market:
		trades = matchMarket(&order, opposite)
	case book.Limit:
		trades = matchLimit(&order, opposite)
	}

	if order.Kind == book.Limit && order.Amount > 0 {
		own.PushBack(*order.Price, &order)
	}

	if len(trades) > 0 {
		e.logger.Debug().
			Uint64("order_id", order.ID).
			Int("fills", len(trades)).
			Msg("order matched")
	}

	if e.sink != nil {
		for _, t := range trades {
			e.sink.Publish(t)
		}
	}

	return trades
}

func (e *Engine) sides(side book.Side) (opposite, own *book.BookSide) {
	if side == book.Bid {
		return e.asks, e.bids
	}
	return e.bids, e.asks
}

// crosses reports whether a limit order on side, limited to limit, may
// trade against a resting level priced at levelPrice.
func crosses(side book.Side, limit, levelPrice price.Price) bool {
	if side == book.Bid {
		return !levelPrice.Greater(limit)
	}
	return !levelPrice.Less(limit)
}

// matchLimit walks opposite in best-first order, stopping the instant a
// level is no longer crossable by the aggressor's limit.
func matchLimit(order *book.Order, opposite *book.BookSide) []book.Trade {
	var trades []book.Trade
	for order.Amount > 0 {
		level, ok := opposite.BestLevel()
		if !ok {
			break
		}
		if !crosses(order.Side, *order.Price, level.Price) {
			break
		}
		trades = append(trades, fillAtLevel(order, opposite, level)...)
	}
	return trades
}

// matchMarket sweeps opposite until the order is filled or the side is
// empty. With no price it has no per-level gate. An optional protective
// price gates every level exactly as a limit price does: the sweep stops at
// the first level it cannot cross, so a market order that cannot cross the
// top of book produces no trades at all.
func matchMarket(order *book.Order, opposite *book.BookSide) []book.Trade {
	var trades []book.Trade
	for order.Amount > 0 {
		level, ok := opposite.BestLevel()
		if !ok {
			break
		}
		if order.Price != nil && !crosses(order.Side, *order.Price, level.Price) {
			break
		}
		trades = append(trades, fillAtLevel(order, opposite, level)...)
	}
	return trades
}

// fillAtLevel consumes resting orders from level's head, in FIFO order,
// until either the level empties or the aggressor's remaining amount is
// exhausted. Exhausted comparisons use <= 0, never == 0, per the engine's
// no-rounding contract on amount.
func fillAtLevel(order *book.Order, side *book.BookSide, level *book.PriceLevel) []book.Trade {
	var trades []book.Trade
	for len(level.Orders) > 0 && order.Amount > 0 {
		resting := level.Orders[0]
		filled := min(resting.Amount, order.Amount)

		trades = append(trades, book.Trade{
			AggressorID: order.ID,
			RestingID:   resting.ID,
			Kind:        order.Kind,
			Price:       level.Price,
			Amount:      filled,
			Side:        order.Side,
		})

		resting.Amount -= filled
		order.Amount -= filled

		if resting.Amount <= 0 {
			side.ConsumeHead(level)
		} else {
			break
		}
	}
	return trades
}
