package book

import (
	"sort"

	"github.com/tidwall/btree"

	"ordercore/internal/price"
)

// PriceLevel is one price key's FIFO queue of resting orders. A level must
// never be exposed to a caller empty — BookSide removes it synchronously
// the moment its queue drains.
type PriceLevel struct {
	Price  price.Price
	Orders []*Order
}

// BookSide is a price-sorted mapping from Price to a FIFO queue of resting
// orders, one per side of the book. Ask sides order ascending so the best
// ask is the tree minimum; bid sides are given a reversed comparator so the
// best bid — the maximum price — is also always the tree minimum. That
// lets every caller ask for "the best level" the same way regardless of
// side, mirroring how this project's own matching engine already walked
// bid and ask trees identically by keeping the bid comparator inverted.
type BookSide struct {
	tree  *btree.BTreeG[*PriceLevel]
	count int
}

// NewBookSide builds an empty side. descending selects the bid-side
// ordering (best = highest price); ascending is used for asks.
func NewBookSide(descending bool) *BookSide {
	less := func(a, b *PriceLevel) bool { return a.Price.Less(b.Price) }
	if descending {
		less = func(a, b *PriceLevel) bool { return a.Price.Greater(b.Price) }
	}
	return &BookSide{tree: btree.NewBTreeG(less)}
}

// Best returns the side's best price: the minimum ask, or the maximum bid.
func (s *BookSide) Best() (price.Price, bool) {
	level, ok := s.tree.MinMut()
	if !ok {
		return price.Price{}, false
	}
	return level.Price, true
}

// BestLevel returns the side's best price level for in-place matching. The
// returned pointer is live in the tree; mutating its Orders slice through
// ConsumeHead keeps bookkeeping consistent.
func (s *BookSide) BestLevel() (*PriceLevel, bool) {
	return s.tree.MinMut()
}

// ConsumeHead removes the head order of level (which must be non-empty),
// deleting the price key entirely if the level becomes empty as a result.
func (s *BookSide) ConsumeHead(level *PriceLevel) *Order {
	o := level.Orders[0]
	level.Orders = level.Orders[1:]
	s.count--
	if len(level.Orders) == 0 {
		s.tree.Delete(level)
	}
	return o
}

// PushBack appends o to the tail of the FIFO queue at p, creating the level
// if it does not already exist.
func (s *BookSide) PushBack(p price.Price, o *Order) {
	if level, ok := s.tree.GetMut(&PriceLevel{Price: p}); ok {
		level.Orders = append(level.Orders, o)
	} else {
		s.tree.Set(&PriceLevel{Price: p, Orders: []*Order{o}})
	}
	s.count++
}

// Levels returns every price level in best-first order. The returned
// slice's levels are never empty.
func (s *BookSide) Levels() []*PriceLevel {
	return s.tree.Items()
}

// Len is the number of resting orders on this side, across all levels.
func (s *BookSide) Len() int {
	return s.count
}

// Orders flattens every level's queue into ascending-price, FIFO-within-
// price order — the ordering the query surface promises for AllBids and
// AllAsks regardless of which side is "best" by max or min.
func (s *BookSide) Orders() []Order {
	levels := s.tree.Items()
	ascending := make([]*PriceLevel, len(levels))
	copy(ascending, levels)
	sort.Slice(ascending, func(i, j int) bool { return ascending[i].Price.Less(ascending[j].Price) })

	var out []Order
	for _, level := range ascending {
		for _, o := range level.Orders {
			out = append(out, *o)
		}
	}
	return out
}
