package dto

import (
	"github.com/shopspring/decimal"

	"github.com/chihoangvnn/sss-sub001/internal/model"
	"github.com/chihoangvnn/sss-sub001/internal/unitpolicy"
)

// ProductResponse is a catalog row with its unit policy already normalized —
// the UI never has to re-derive defaults.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	ItemCode      string          `json:"item_code,omitempty"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	UnitType      string          `json:"unit_type"`
	Unit          string          `json:"unit"`
	AllowDecimals bool            `json:"allow_decimals"`
	MinQuantity   decimal.Decimal `json:"min_quantity"`
	QuantityStep  decimal.Decimal `json:"quantity_step"`
}

func ProductToResponse(p model.Product) ProductResponse {
	pol := unitpolicy.Resolve(p)
	return ProductResponse{
		ID:            p.ID.String(),
		SKU:           p.SKU,
		ItemCode:      p.ItemCode,
		Name:          p.Name,
		Price:         p.Price,
		Stock:         p.Stock,
		UnitType:      pol.UnitType.String(),
		Unit:          pol.Unit,
		AllowDecimals: pol.AllowDecimals,
		MinQuantity:   pol.MinQuantity,
		QuantityStep:  pol.QuantityStep,
	}
}
