package engine

import (
	"ordercore/internal/book"
	"ordercore/internal/price"
)

// BestBid returns the highest resting bid price, if any.
func (e *Engine) BestBid() (price.Price, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bids.Best()
}

// BestAsk returns the lowest resting ask price, if any.
func (e *Engine) BestAsk() (price.Price, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.asks.Best()
}

// AllBids returns every resting bid, ascending by price then FIFO within
// price.
func (e *Engine) AllBids() []book.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bids.Orders()
}

// AllAsks returns every resting ask, ascending by price then FIFO within
// price.
func (e *Engine) AllAsks() []book.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.asks.Orders()
}

// AllOrders concatenates AllBids and AllAsks.
func (e *Engine) AllOrders() []book.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	orders := e.bids.Orders()
	return append(orders, e.asks.Orders()...)
}

// GetByID finds a resting order by id with a linear scan; id indexing is
// not required by the query surface's contract.
func (e *Engine) GetByID(id uint64) (book.Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, o := range e.bids.Orders() {
		if o.ID == id {
			return o, true
		}
	}
	for _, o := range e.asks.Orders() {
		if o.ID == id {
			return o, true
		}
	}
	return book.Order{}, false
}

// MarketOrders returns every resting order of kind Market. Because market
// orders never rest, this is empty under correct operation — its presence
// signals an invariant violation upstream.
func (e *Engine) MarketOrders() []book.Order {
	return e.filterResting(book.Market)
}

// LimitOrders returns every resting order of kind Limit.
func (e *Engine) LimitOrders() []book.Order {
	return e.filterResting(book.Limit)
}

func (e *Engine) filterResting(kind book.Kind) []book.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []book.Order
	for _, o := range append(e.bids.Orders(), e.asks.Orders()...) {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}
