package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		price string
		want  int64
	}{
		{"25000", 2500000},
		{"0", 0},
		{"0.01", 1},
		{"0.005", 1},  // half rounds away from zero
		{"0.004", 0},
		{"80000", 8000000},
		{"1234.56", 123456},
	}
	for _, tc := range cases {
		got := ToMinorUnits(decimal.RequireFromString(tc.price))
		assert.Equal(t, tc.want, got, "price %s", tc.price)
	}
}

func TestToScaledQuantity(t *testing.T) {
	cases := []struct {
		qty  string
		want int64
	}{
		{"1", 1000},
		{"0.25", 250},
		{"0.251", 251},
		{"0.0005", 1},
		{"0.0004", 0},
		{"2.5", 2500},
	}
	for _, tc := range cases {
		got := ToScaledQuantity(decimal.RequireFromString(tc.qty))
		assert.Equal(t, tc.want, got, "qty %s", tc.qty)
	}
}

func TestLineTotalMinorUnits(t *testing.T) {
	// 80,000 VND/kg × 0.501 kg = 40,080 VND exactly
	price := ToMinorUnits(decimal.RequireFromString("80000"))
	qty := ToScaledQuantity(decimal.RequireFromString("0.501"))
	assert.Equal(t, int64(4008000), LineTotalMinorUnits(price, qty))
	assert.True(t, ToDisplay(LineTotalMinorUnits(price, qty)).Equal(decimal.RequireFromString("40080")))

	// Rounding happens exactly once, at the line level
	assert.Equal(t, int64(1), LineTotalMinorUnits(1, 501))   // 0.501 → 1
	assert.Equal(t, int64(0), LineTotalMinorUnits(1, 499))   // 0.499 → 0
	assert.Equal(t, int64(1), LineTotalMinorUnits(1, 500))   // half away from zero
}

func TestCartTotalOrderInvariant(t *testing.T) {
	lines := []Line{
		{PriceMinor: 2500000, QtyScaled: 2000},
		{PriceMinor: 8000000, QtyScaled: 501},
		{PriceMinor: 1599900, QtyScaled: 333},
		{PriceMinor: 75, QtyScaled: 1250},
	}
	want := CartTotalMinorUnits(lines)

	perms := [][]int{
		{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1},
	}
	for _, order := range perms {
		shuffled := make([]Line, 0, len(lines))
		for _, i := range order {
			shuffled = append(shuffled, lines[i])
		}
		assert.Equal(t, want, CartTotalMinorUnits(shuffled), "order %v", order)
	}
}

func TestDisplayRoundTripIdempotent(t *testing.T) {
	for _, s := range []string{"25000", "0.01", "99999.99", "0", "123.45", "40080"} {
		x := decimal.RequireFromString(s)
		once := ToDisplay(ToMinorUnits(x))
		twice := ToDisplay(ToMinorUnits(once))
		assert.True(t, once.Equal(twice), "round trip drifted for %s: %s vs %s", s, once, twice)
	}
}

func TestBoundedRoundingError(t *testing.T) {
	// |lineTotal/100 − price×qty| < 0.005 for any single line
	halfMinor := decimal.RequireFromString("0.005")
	cases := []struct{ price, qty string }{
		{"80000", "0.501"},
		{"15999", "0.333"},
		{"0.75", "1.25"},
		{"29999.99", "0.001"},
		{"7", "2.499"},
	}
	for _, tc := range cases {
		price := decimal.RequireFromString(tc.price)
		qty := decimal.RequireFromString(tc.qty)
		got := ToDisplay(LineTotalMinorUnits(ToMinorUnits(price), ToScaledQuantity(qty)))
		diff := got.Sub(price.Mul(qty)).Abs()
		assert.True(t, diff.LessThan(halfMinor),
			"price %s qty %s: |%s − %s| = %s", tc.price, tc.qty, got, price.Mul(qty), diff)
	}
}

func TestParsePrice(t *testing.T) {
	d, err := ParsePrice("25000")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("25000")))

	_, err = ParsePrice("abc")
	assert.Error(t, err)
	_, err = ParsePrice("-5")
	assert.Error(t, err)
	_, err = ParsePrice("1.999")
	assert.Error(t, err)
}
