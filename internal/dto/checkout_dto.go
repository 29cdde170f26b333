package dto

import "github.com/shopspring/decimal"

// CheckoutRequest submits the tab's current cart to the order service.
// AutoPrint mirrors the client-local "auto-print on checkout" preference;
// nil falls back to the server default.
type CheckoutRequest struct {
	AutoPrint *bool `json:"auto_print"`
}

type CheckoutResponse struct {
	OrderID string          `json:"order_id"`
	TabID   int             `json:"tab_id"`
	Status  string          `json:"status"`
	Total   decimal.Decimal `json:"total"`
}
