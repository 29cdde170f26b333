package cart

import "errors"

// All cart/tab failures are recoverable and leave state unchanged. Callers
// match with errors.Is and translate to user notifications at the HTTP layer.
var (
	ErrOutOfStock              = errors.New("requested quantity exceeds available stock")
	ErrBelowMinimumQuantity    = errors.New("quantity below the minimum for this product")
	ErrProductNotFound         = errors.New("product not found")
	ErrOrderSubmissionFailed   = errors.New("order submission failed")
	ErrDuplicateTargetNotEmpty = errors.New("duplicate target tab is not empty")
)
