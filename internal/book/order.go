// Package book holds the order book's value types (Order, Trade, Side,
// Kind) and the price-indexed FIFO structure (BookSide) that backs each
// side of the book. It has no knowledge of the matching algorithm, the
// transport, or the process wiring around it.
package book

import (
	"encoding/json"
	"fmt"
	"time"

	"ordercore/internal/price"
)

// Side is which side of the book an order rests on, or which side an
// aggressor arrived on.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	switch s {
	case Bid:
		return "Bid"
	case Ask:
		return "Ask"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag {
	case "Bid":
		*s = Bid
	case "Ask":
		*s = Ask
	default:
		return fmt.Errorf("book: invalid side %q", tag)
	}
	return nil
}

// Kind distinguishes resting limit orders from sweeping market orders.
type Kind int

const (
	Limit Kind = iota
	Market
)

func (k Kind) String() string {
	switch k {
	case Limit:
		return "Limit"
	case Market:
		return "Market"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag {
	case "Limit":
		*k = Limit
	case "Market":
		*k = Market
	default:
		return fmt.Errorf("book: invalid order_type %q", tag)
	}
	return nil
}

// Order is a resting or in-flight order. Price is nil for a Market order
// with no protective limit; it is otherwise required.
//
// Timestamp is assigned by the engine on admission — callers must not set
// it, and any caller-supplied value is overwritten by Submit.
type Order struct {
	ID          uint64      `json:"id"`
	Side        Side        `json:"bid_or_ask"`
	Kind        Kind        `json:"order_type"`
	Price       *price.Price `json:"price,omitempty"`
	Amount      float64     `json:"amount"`
	TradingPair string      `json:"trading_pair"`
	Timestamp   time.Time   `json:"timestamp"`
}
