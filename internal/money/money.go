// Package money is the fixed-point arithmetic core for cart pricing.
// Prices are VND (no sub-unit in display) but quantities may be fractional
// for weight/volume products, so all math happens on scaled integers:
// money as minor units (1/100 VND) and quantities as thousandths of a unit.
// Each line is rounded exactly once; totals are sums of already-rounded
// lines and therefore independent of line order.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// MinorUnitScale converts display currency to internal minor units.
	MinorUnitScale = 100
	// QuantityScale converts a decimal quantity to integer thousandths.
	QuantityScale = 1000
)

var (
	minorUnitFactor = decimal.NewFromInt(MinorUnitScale)
	quantityFactor  = decimal.NewFromInt(QuantityScale)
)

// Line is the minimal shape the totaling functions need.
type Line struct {
	PriceMinor int64 // unit price in minor units
	QtyScaled  int64 // quantity in thousandths
}

// ToMinorUnits converts a display-currency price to integer minor units,
// rounding half away from zero.
func ToMinorUnits(price decimal.Decimal) int64 {
	return price.Mul(minorUnitFactor).Round(0).IntPart()
}

// ToScaledQuantity converts a decimal quantity to integer thousandths,
// rounding half away from zero.
func ToScaledQuantity(qty decimal.Decimal) int64 {
	return qty.Mul(quantityFactor).Round(0).IntPart()
}

// FromScaledQuantity converts integer thousandths back to a decimal quantity.
func FromScaledQuantity(qtyScaled int64) decimal.Decimal {
	return decimal.New(qtyScaled, -3)
}

// LineTotalMinorUnits computes round(priceMinor × qtyScaled / 1000) in pure
// integer arithmetic. The single rounding per line is what keeps cart totals
// reproducible across platforms.
func LineTotalMinorUnits(priceMinor, qtyScaled int64) int64 {
	return roundDiv(priceMinor*qtyScaled, QuantityScale)
}

// CartTotalMinorUnits sums independently rounded line totals. Because each
// line is rounded before summing, the result is invariant under reordering
// of the lines.
func CartTotalMinorUnits(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += LineTotalMinorUnits(l.PriceMinor, l.QtyScaled)
	}
	return total
}

// ToDisplay converts minor units back to the display-currency decimal
// (two fractional digits, exact).
func ToDisplay(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// ParsePrice parses a decimal price string from the catalog boundary.
// Rejects negative prices and anything finer than minor-unit precision.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid price %q: negative", s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("invalid price %q: more than 2 decimal places", s)
	}
	return d, nil
}

// roundDiv divides n by d rounding half away from zero. d must be positive.
func roundDiv(n, d int64) int64 {
	if n >= 0 {
		return (n + d/2) / d
	}
	return -((-n + d/2) / d)
}
