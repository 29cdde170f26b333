package dto

import (
	"github.com/shopspring/decimal"

	"github.com/chihoangvnn/sss-sub001/internal/tabs"
)

// AddLineRequest adds a product to a tab's cart, either by id (pointer click
// on the product grid) or by decoded barcode. Quantity is optional — omitted
// means one add action per the product's unit policy.
type AddLineRequest struct {
	ProductID string          `json:"product_id"`
	Barcode   string          `json:"barcode"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// SetCustomerRequest attaches a customer to a tab; an empty id detaches.
type SetCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

type DuplicateTabRequest struct {
	TargetTabID int `json:"target_tab_id" validate:"required,min=1,max=5"`
}

// KeypressRequest carries a global key-down from the UI.
type KeypressRequest struct {
	Key           string `json:"key" validate:"required"`
	TypingInInput bool   `json:"typing_in_input"`
	FocusField    string `json:"focus_field"`
}

type KeypressResponse struct {
	Action      string `json:"action"`
	Tab         int    `json:"tab,omitempty"`
	ActiveTabID int    `json:"active_tab_id"`
}

type LineResponse struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type TabResponse struct {
	ID       int               `json:"id"`
	Label    string            `json:"label"`
	Status   string            `json:"status"`
	Lines    []LineResponse    `json:"lines"`
	Total    decimal.Decimal   `json:"total"`
	Customer *CustomerResponse `json:"customer,omitempty"`
	OrderID  *string           `json:"order_id,omitempty"`
}

type TabListResponse struct {
	ActiveTabID int           `json:"active_tab_id"`
	Tabs        []TabResponse `json:"tabs"`
}

type ClearAllResponse struct {
	Cleared        int `json:"cleared"`
	SkippedPending int `json:"skipped_pending"`
}

// TabToResponse flattens a tab snapshot for the UI. Totals come straight from
// the arithmetic core via the snapshot; nothing is recomputed here.
func TabToResponse(v tabs.TabView) TabResponse {
	lines := make([]LineResponse, 0, len(v.Lines))
	for i := range v.Lines {
		l := &v.Lines[i]
		lines = append(lines, LineResponse{
			ProductID: l.ProductID.String(),
			SKU:       l.SKU,
			Name:      l.Name,
			Unit:      l.Policy.Unit,
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal(),
		})
	}
	resp := TabResponse{
		ID:     v.ID,
		Label:  v.Label,
		Status: string(v.Status),
		Lines:  lines,
		Total:  v.Total,
	}
	if v.Customer != nil {
		resp.Customer = &CustomerResponse{
			ID:    v.Customer.ID.String(),
			Name:  v.Customer.Name,
			Phone: v.Customer.Phone,
		}
	}
	if v.OrderID != nil {
		id := v.OrderID.String()
		resp.OrderID = &id
	}
	return resp
}
