package checkout

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel validation errors. Messages are user-facing and rendered verbatim
// by the HTTP layer.
var (
	ErrEmptyCart          = errors.New("cart must be a non-empty list of {sku, qty}")
	ErrEntryNotObject     = errors.New("Each cart entry must be an object with sku and qty")
	ErrEntryMissingFields = errors.New("Each cart entry must have sku and qty")
	ErrQtyNotInteger      = errors.New("qty must be integer")
	ErrQtyNotPositive     = errors.New("qty must be positive integer")
)

// ItemNotFoundError indicates a cart line references an unknown SKU.
type ItemNotFoundError struct {
	SKU string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("Item with SKU %s not found", e.SKU)
}

// InsufficientStockError indicates the cart requires more units of a SKU
// than the catalog currently holds. Available is the item's actual stock at
// validation time.
type InsufficientStockError struct {
	SKU       string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for SKU %s (available %d)", e.SKU, e.Available)
}
