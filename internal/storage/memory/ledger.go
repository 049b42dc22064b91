package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xenking/smart-retail/internal/domain/billing"
)

// Compile-time check ensuring Ledger satisfies the ledger interface.
var _ billing.Ledger = (*Ledger)(nil)

// Ledger is an append-only in-memory sequence of bills. Bills are stored in
// append order; listing returns a reversed copy.
type Ledger struct {
	mu    sync.RWMutex
	bills []billing.Bill
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds the bill to the end of the ledger, backfilling the ID and
// timestamp when the caller left them unset.
func (l *Ledger) Append(_ context.Context, bill *billing.Bill) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.Timestamp.IsZero() {
		bill.Timestamp = time.Now().UTC()
	}

	stored := *bill
	stored.Items = make([]billing.LineItem, len(bill.Items))
	copy(stored.Items, bill.Items)
	l.bills = append(l.bills, stored)
	return nil
}

// ListMostRecentFirst returns every bill, newest first. The result is a
// fresh slice on every call.
func (l *Ledger) ListMostRecentFirst(_ context.Context) ([]billing.Bill, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]billing.Bill, 0, len(l.bills))
	for i := len(l.bills) - 1; i >= 0; i-- {
		out = append(out, l.bills[i])
	}
	return out, nil
}
