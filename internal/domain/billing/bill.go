package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the immutable record of one completed checkout. Prices and names
// are snapshots taken at checkout time; later catalog edits never change a
// historical bill.
type Bill struct {
	ID        string
	Timestamp time.Time
	Items     []LineItem
	Total     decimal.Decimal
}

// LineItem is a single line of a bill, in cart order.
type LineItem struct {
	SKU       string
	Name      string
	Price     decimal.Decimal
	Qty       int
	LineTotal decimal.Decimal
}

// Ledger defines the append-only store of bills.
type Ledger interface {
	// Append adds the bill to the end of the ledger. A missing ID or
	// timestamp is filled in by the ledger.
	Append(ctx context.Context, bill *Bill) error
	// ListMostRecentFirst returns all bills, newest first. The returned
	// slice is a copy; mutating it does not affect the ledger.
	ListMostRecentFirst(ctx context.Context) ([]Bill, error)
}
