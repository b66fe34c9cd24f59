package book

import "ordercore/internal/price"

// Trade records a single fill between one aggressor and one resting order
// at one price. Trades are value objects: once emitted they are never
// mutated again.
type Trade struct {
	AggressorID uint64      `json:"aggressor_id"`
	RestingID   uint64      `json:"resting_id"`
	Kind        Kind        `json:"kind"`
	Price       price.Price `json:"price"`
	Amount      float64     `json:"amount"`
	Side        Side        `json:"side"`
}
