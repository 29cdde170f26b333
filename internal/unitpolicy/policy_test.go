package unitpolicy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chihoangvnn/sss-sub001/internal/model"
)

func TestResolveDefaultsForBareProduct(t *testing.T) {
	pol := Resolve(model.Product{Name: "Nước suối"})

	assert.Equal(t, Count, pol.UnitType)
	assert.Equal(t, DefaultUnit, pol.Unit)
	assert.False(t, pol.AllowDecimals)
	assert.True(t, pol.MinQuantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, pol.QuantityStep.Equal(decimal.NewFromInt(1)))
}

func TestResolveMalformedUnitTypeFallsBackToCount(t *testing.T) {
	pol := Resolve(model.Product{
		UnitType:      "kilograms", // legacy free-text value
		Unit:          "kg",
		AllowDecimals: true,
		MinQuantity:   decimal.RequireFromString("0.1"),
		QuantityStep:  decimal.RequireFromString("0.05"),
	})

	// The whole policy collapses to count defaults, not just the type.
	assert.Equal(t, Count, pol.UnitType)
	assert.False(t, pol.AllowDecimals)
	assert.True(t, pol.MinQuantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, pol.QuantityStep.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "kg", pol.Unit)
}

func TestResolveWeightProduct(t *testing.T) {
	pol := Resolve(model.Product{
		UnitType:      "weight",
		Unit:          "kg",
		AllowDecimals: true,
		MinQuantity:   decimal.RequireFromString("0.1"),
		QuantityStep:  decimal.RequireFromString("0.001"),
	})

	assert.Equal(t, Weight, pol.UnitType)
	assert.True(t, pol.AllowDecimals)
	assert.True(t, pol.MinQuantity.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, pol.QuantityStep.Equal(decimal.RequireFromString("0.001")))
	assert.True(t, pol.Floor().IsZero())
}

func TestResolveFractionalDefaultsFillIn(t *testing.T) {
	pol := Resolve(model.Product{UnitType: "volume", Unit: "lít", AllowDecimals: true})

	assert.Equal(t, Volume, pol.UnitType)
	assert.True(t, pol.QuantityStep.Equal(DefaultFractionalStep))
	assert.True(t, pol.MinQuantity.Equal(DefaultFractionalStep))
}

func TestResolveIntegerOnlyInvariant(t *testing.T) {
	// allowDecimals=false must force minQuantity=1 and an integer step, even
	// when the catalog row says otherwise.
	pol := Resolve(model.Product{
		UnitType:      "count",
		AllowDecimals: false,
		MinQuantity:   decimal.RequireFromString("0.5"),
		QuantityStep:  decimal.RequireFromString("0.25"),
	})

	assert.True(t, pol.MinQuantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, pol.QuantityStep.Equal(decimal.NewFromInt(1)))
	assert.True(t, pol.Floor().Equal(decimal.NewFromInt(1)))
}

func TestDefaultIncrement(t *testing.T) {
	count := Resolve(model.Product{})
	assert.True(t, count.DefaultIncrement().Equal(decimal.NewFromInt(1)))

	weight := Resolve(model.Product{
		UnitType:      "weight",
		AllowDecimals: true,
		MinQuantity:   decimal.RequireFromString("0.25"),
		QuantityStep:  decimal.RequireFromString("0.001"),
	})
	// min > step, so one add action contributes the minimum
	assert.True(t, weight.DefaultIncrement().Equal(decimal.RequireFromString("0.25")))
}
