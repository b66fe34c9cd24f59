// Package price implements the fixed-point price value used as the book's
// sort key. Floating-point prices break ordering and map lookup once two
// distinct inputs round to the same key, so every price that reaches the
// matching engine first passes through New.
package price

import (
	"encoding/json"
	"fmt"
)

// Scalar is the fixed-point scale: prices carry five fractional digits.
const Scalar uint64 = 100000

// Price is a non-negative fixed-point decimal: an integral whole-unit part
// plus a fractional remainder scaled by Scalar. Two prices are equal iff
// both components match, and ordering is lexicographic (integral, then
// fractional). Price is immutable once constructed.
type Price struct {
	integral   uint64
	fractional uint64
}

// New truncates x toward zero at the Scalar-th fractional unit. Behavior on
// negative or non-finite x is unspecified; callers must not pass such values.
func New(x float64) Price {
	integral := uint64(x)
	fractional := uint64((x - float64(integral)) * float64(Scalar))

	// Guard against floating point rounding pushing the fractional part up
	// to (or past) Scalar itself: carry any overflow into integral rather
	// than emitting an out-of-range fractional component.
	if fractional >= Scalar {
		integral += fractional / Scalar
		fractional %= Scalar
	}

	return Price{integral: integral, fractional: fractional}
}

// Integral is the whole-unit part of the price.
func (p Price) Integral() uint64 { return p.integral }

// Fractional is the scaled fractional remainder, always < Scalar.
func (p Price) Fractional() uint64 { return p.fractional }

// Scalar is the fixed-point scale this price was constructed with.
func (p Price) Scalar() uint64 { return Scalar }

// Less reports whether p sorts strictly before other.
func (p Price) Less(other Price) bool {
	if p.integral != other.integral {
		return p.integral < other.integral
	}
	return p.fractional < other.fractional
}

// Greater reports whether p sorts strictly after other.
func (p Price) Greater(other Price) bool { return other.Less(p) }

// Equal reports whether p and other carry the same integral and fractional
// components. The scalar is a constant and does not participate.
func (p Price) Equal(other Price) bool {
	return p.integral == other.integral && p.fractional == other.fractional
}

func (p Price) String() string {
	return fmt.Sprintf("%d.%05d", p.integral, p.fractional)
}

type wireForm struct {
	Integral   uint64 `json:"integral"`
	Fractional uint64 `json:"fractional"`
	Scalar     uint64 `json:"scalar"`
}

// MarshalJSON serializes the price as its {integral, fractional, scalar}
// triple per the wire encoding in the external interfaces contract.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireForm{Integral: p.integral, Fractional: p.fractional, Scalar: Scalar})
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var w wireForm
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.integral = w.Integral
	p.fractional = w.Fractional
	return nil
}
