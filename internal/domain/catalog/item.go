package catalog

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("item not found")
	// ErrDuplicateSKU is returned when creating an item whose SKU is taken.
	ErrDuplicateSKU = errors.New("item already exists")
)

// FieldError indicates an invalid field value on item creation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

// Item represents a catalog entry available for sale.
// The SKU is the unique key and never changes after creation.
type Item struct {
	SKU   string
	Name  string
	Price decimal.Decimal
	Stock int
}

// NewItem validates field values and builds an Item. The SKU is trimmed
// before the emptiness check; price and stock must be non-negative.
func NewItem(sku, name string, price decimal.Decimal, stock int) (*Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, &FieldError{Field: "sku", Reason: "must not be empty"}
	}
	if name == "" {
		return nil, &FieldError{Field: "name", Reason: "must not be empty"}
	}
	if price.IsNegative() {
		return nil, &FieldError{Field: "price", Reason: "must not be negative"}
	}
	if stock < 0 {
		return nil, &FieldError{Field: "stock", Reason: "must not be negative"}
	}
	return &Item{SKU: sku, Name: name, Price: price, Stock: stock}, nil
}

// Repository defines storage operations for the item catalog.
type Repository interface {
	// List returns every item in insertion order.
	List(ctx context.Context) ([]Item, error)
	// Get returns the item with the given SKU, or ErrNotFound.
	Get(ctx context.Context, sku string) (*Item, error)
	// Create inserts a new item, or returns ErrDuplicateSKU.
	Create(ctx context.Context, item *Item) error
	// Deduct decreases the item's stock by qty and returns a snapshot of the
	// item after the deduction. The caller must have already verified that
	// stock >= qty; Deduct does not re-check.
	Deduct(ctx context.Context, sku string, qty int) (*Item, error)
}
