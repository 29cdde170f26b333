package cart

import "github.com/chihoangvnn/sss-sub001/internal/money"

// CanAdd is the advisory stock check: true iff the cart quantity after the
// add would still fit in the last-known stock. All quantities in thousandths.
//
// Best-effort only — the authoritative decrement happens server-side at order
// creation. Two tabs racing for the last unit is resolved there, not here;
// this guard just catches the common oversell against stale local data.
func CanAdd(stock int, currentQtyScaled, requestedQtyScaled int64) bool {
	stockScaled := int64(stock) * money.QuantityScale
	return currentQtyScaled+requestedQtyScaled <= stockScaled
}
