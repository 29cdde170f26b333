// Package unitpolicy normalizes per-product quantity rules. Catalog rows may
// carry legacy or missing unit metadata; Resolve always returns a fully
// populated policy and never fails — anything malformed collapses to the
// integer-count default.
package unitpolicy

import (
	"github.com/shopspring/decimal"

	"github.com/chihoangvnn/sss-sub001/internal/model"
)

// UnitType is a closed variant of how a product is measured.
type UnitType int

const (
	Count UnitType = iota
	Weight
	Volume
)

func (t UnitType) String() string {
	switch t {
	case Weight:
		return "weight"
	case Volume:
		return "volume"
	default:
		return "count"
	}
}

// DefaultUnit is the display label for count products without a unit symbol.
const DefaultUnit = "cái"

// DefaultFractionalStep is the smallest increment for weight/volume products
// that do not declare their own step.
var DefaultFractionalStep = decimal.New(1, -3) // 0.001

// Policy is the normalized quantity rule set for one product.
type Policy struct {
	UnitType      UnitType
	Unit          string
	AllowDecimals bool
	MinQuantity   decimal.Decimal
	QuantityStep  decimal.Decimal
}

// Resolve derives the policy for a product. Pure, total, never panics.
//
// Invariant: AllowDecimals=false implies MinQuantity=1 and an integer
// QuantityStep — integer-only products cannot end up with fractional rules
// no matter what the catalog row says.
func Resolve(p model.Product) Policy {
	unitType, known := parseUnitType(p.UnitType)
	if !known {
		// Malformed metadata: the whole policy falls back to count defaults.
		return countDefault(p.Unit)
	}

	pol := Policy{
		UnitType:      unitType,
		Unit:          p.Unit,
		AllowDecimals: p.AllowDecimals,
		MinQuantity:   p.MinQuantity,
		QuantityStep:  p.QuantityStep,
	}
	if pol.Unit == "" {
		pol.Unit = DefaultUnit
	}

	if !pol.AllowDecimals {
		pol.MinQuantity = decimal.NewFromInt(1)
		if !pol.QuantityStep.IsPositive() || !pol.QuantityStep.Equal(pol.QuantityStep.Truncate(0)) {
			pol.QuantityStep = decimal.NewFromInt(1)
		}
		return pol
	}

	if !pol.QuantityStep.IsPositive() {
		pol.QuantityStep = DefaultFractionalStep
	}
	if !pol.MinQuantity.IsPositive() {
		pol.MinQuantity = pol.QuantityStep
	}
	return pol
}

func countDefault(unit string) Policy {
	if unit == "" {
		unit = DefaultUnit
	}
	return Policy{
		UnitType:      Count,
		Unit:          unit,
		AllowDecimals: false,
		MinQuantity:   decimal.NewFromInt(1),
		QuantityStep:  decimal.NewFromInt(1),
	}
}

func parseUnitType(s string) (UnitType, bool) {
	switch s {
	case "", "count", "unit", "piece":
		return Count, true
	case "weight":
		return Weight, true
	case "volume":
		return Volume, true
	default:
		return Count, false
	}
}

// Floor is the quantity below which a line must be removed rather than kept:
// 1 for integer-count products, 0 for fractional ones.
func (p Policy) Floor() decimal.Decimal {
	if p.AllowDecimals {
		return decimal.Zero
	}
	return decimal.NewFromInt(1)
}

// DefaultIncrement is the amount one add action contributes when the caller
// does not specify a quantity: max(step, minQuantity).
func (p Policy) DefaultIncrement() decimal.Decimal {
	if p.QuantityStep.GreaterThan(p.MinQuantity) {
		return p.QuantityStep
	}
	return p.MinQuantity
}
