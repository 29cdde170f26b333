// Package cart holds the line items of one draft order and all the quantity
// rules around mutating them. Quantities live as scaled integers (thousandths)
// and prices as minor units; the shopspring decimals on the surface are
// conversions, never the computation substrate.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chihoangvnn/sss-sub001/internal/model"
	"github.com/chihoangvnn/sss-sub001/internal/money"
	"github.com/chihoangvnn/sss-sub001/internal/unitpolicy"
)

// Line is one product-and-quantity entry. The product fields are a snapshot
// taken at add time; the line total is always derived, never stored.
type Line struct {
	ProductID uuid.UUID
	SKU       string
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
	Policy    unitpolicy.Policy

	priceMinor int64
	qtyScaled  int64
}

// Quantity returns the line quantity as a decimal (thousandth precision).
func (l *Line) Quantity() decimal.Decimal {
	return money.FromScaledQuantity(l.qtyScaled)
}

// QuantityScaled returns the quantity in integer thousandths.
func (l *Line) QuantityScaled() int64 { return l.qtyScaled }

// LineTotalMinor is the rounded line total in minor units.
func (l *Line) LineTotalMinor() int64 {
	return money.LineTotalMinorUnits(l.priceMinor, l.qtyScaled)
}

// LineTotal is the line total at display precision.
func (l *Line) LineTotal() decimal.Decimal {
	return money.ToDisplay(l.LineTotalMinor())
}

// Cart is an ordered collection of lines with no duplicate product ids.
// It is a plain value owned by the tab manager; it does no locking itself.
type Cart struct {
	lines []*Line
}

func New() *Cart { return &Cart{} }

// AddOrIncrement adds qty of a product, merging into an existing line when
// the product is already in the cart. A zero qty means "one add action":
// max(step, minQuantity) per the product's unit policy. The cart is left
// untouched on any error.
func (c *Cart) AddOrIncrement(p model.Product, qty decimal.Decimal) error {
	pol := unitpolicy.Resolve(p)
	if qty.IsNegative() {
		return ErrBelowMinimumQuantity
	}
	if qty.IsZero() {
		qty = pol.DefaultIncrement()
	}

	stepScaled := money.ToScaledQuantity(pol.QuantityStep)
	addScaled := snapToStep(money.ToScaledQuantity(qty), stepScaled)
	if addScaled <= 0 {
		return ErrBelowMinimumQuantity
	}

	line := c.find(p.ID)
	var current int64
	if line != nil {
		current = line.qtyScaled
	} else {
		// New lines start at least at the policy minimum.
		if minScaled := money.ToScaledQuantity(pol.MinQuantity); addScaled < minScaled {
			addScaled = minScaled
		}
	}

	if !CanAdd(p.Stock, current, addScaled) {
		return ErrOutOfStock
	}

	if line != nil {
		line.qtyScaled += addScaled
		return nil
	}
	c.lines = append(c.lines, &Line{
		ProductID:  p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		UnitPrice:  p.Price,
		Stock:      p.Stock,
		Policy:     pol,
		priceMinor: money.ToMinorUnits(p.Price),
		qtyScaled:  addScaled,
	})
	return nil
}

// SetQuantity replaces a line's quantity. Below the policy floor (1 for
// integer-count products, 0 for fractional ones) the line is removed instead
// of keeping a degenerate quantity; between the floor and the policy minimum
// it clamps up to the minimum. Out-of-stock requests reject without mutating.
func (c *Cart) SetQuantity(productID uuid.UUID, qty decimal.Decimal) error {
	line := c.find(productID)
	if line == nil {
		return ErrProductNotFound
	}
	pol := line.Policy

	qScaled := snapToStep(money.ToScaledQuantity(qty), money.ToScaledQuantity(pol.QuantityStep))
	floorScaled := money.ToScaledQuantity(pol.Floor())
	if (pol.AllowDecimals && qScaled <= 0) || (!pol.AllowDecimals && qScaled < floorScaled) {
		c.Remove(productID)
		return nil
	}
	if minScaled := money.ToScaledQuantity(pol.MinQuantity); qScaled < minScaled {
		qScaled = minScaled
	}

	if !CanAdd(line.Stock, 0, qScaled) {
		return ErrOutOfStock
	}
	line.qtyScaled = qScaled
	return nil
}

// Remove deletes the line for productID; no-op when absent.
func (c *Cart) Remove(productID uuid.UUID) {
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear drops every line.
func (c *Cart) Clear() { c.lines = nil }

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Lines returns a copy of the lines in cart order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

// TotalMinorUnits delegates to the arithmetic core over all current lines.
func (c *Cart) TotalMinorUnits() int64 {
	lines := make([]money.Line, len(c.lines))
	for i, l := range c.lines {
		lines[i] = money.Line{PriceMinor: l.priceMinor, QtyScaled: l.qtyScaled}
	}
	return money.CartTotalMinorUnits(lines)
}

// Total is the cart total at display precision.
func (c *Cart) Total() decimal.Decimal {
	return money.ToDisplay(c.TotalMinorUnits())
}

// Clone deep-copies the cart; mutations on either side stay invisible to the
// other. Used by tab duplication.
func (c *Cart) Clone() *Cart {
	clone := &Cart{lines: make([]*Line, len(c.lines))}
	for i, l := range c.lines {
		cp := *l
		clone.lines[i] = &cp
	}
	return clone
}

func (c *Cart) find(productID uuid.UUID) *Line {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}

// snapToStep rounds a scaled quantity to the nearest multiple of the scaled
// step. With everything already integer the old float tolerance check
// becomes exact.
func snapToStep(qtyScaled, stepScaled int64) int64 {
	if stepScaled <= 0 {
		return qtyScaled
	}
	half := stepScaled / 2
	return ((qtyScaled + half) / stepScaled) * stepScaled
}
