// Package checkout implements the all-or-nothing checkout engine: a cart is
// validated line by line against live stock, and only when every line is
// satisfiable is stock deducted and a bill appended to the ledger.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/smart-retail/internal/domain/billing"
	"github.com/xenking/smart-retail/internal/domain/catalog"
)

// CartLine is one decoded cart entry. Shape problems found while decoding
// (non-object entry, missing sku or qty, non-integer qty) are carried in
// Defect instead of being reported immediately, so the engine surfaces them
// in cart order, interleaved with catalog checks.
type CartLine struct {
	SKU string
	Qty int
	// Defect is the decode-level validation error for this line, nil when
	// the line is well formed.
	Defect error
}

// Service runs checkouts against a catalog and records bills in a ledger.
type Service struct {
	catalog catalog.Repository
	ledger  billing.Ledger

	// mu spans both checkout phases so concurrent checkouts cannot deduct
	// stock that another cart already validated against. Item creation only
	// ever adds stock and needs no coordination here.
	mu sync.Mutex

	now func() time.Time
}

// NewService creates a checkout Service over the given catalog and ledger.
func NewService(cat catalog.Repository, ledger billing.Ledger) *Service {
	return &Service{
		catalog: cat,
		ledger:  ledger,
		now:     time.Now,
	}
}

// Checkout validates every line of the cart, deducts stock, and appends a
// bill. It is all-or-nothing: on any validation failure nothing is mutated
// and the error identifies the first offending line.
//
// Validation is fail-fast in cart order. Stock checks accumulate the
// required quantity per SKU, so a cart naming the same SKU twice cannot
// drive stock negative at commit time.
func (s *Service) Checkout(ctx context.Context, lines []CartLine) (*billing.Bill, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validation pass: no mutation.
	required := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Defect != nil {
			return nil, l.Defect
		}
		if l.Qty <= 0 {
			return nil, ErrQtyNotPositive
		}

		item, err := s.catalog.Get(ctx, l.SKU)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, &ItemNotFoundError{SKU: l.SKU}
			}
			return nil, errors.Wrapf(err, "get item %s", l.SKU)
		}

		required[l.SKU] += l.Qty
		if item.Stock < required[l.SKU] {
			return nil, &InsufficientStockError{SKU: l.SKU, Available: item.Stock}
		}
	}

	// Commit pass: deduct stock and build the bill in cart order.
	items := make([]billing.LineItem, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		item, err := s.catalog.Deduct(ctx, l.SKU, l.Qty)
		if err != nil {
			return nil, errors.Wrapf(err, "deduct %s", l.SKU)
		}

		raw := item.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
		items = append(items, billing.LineItem{
			SKU:       item.SKU,
			Name:      item.Name,
			Price:     item.Price,
			Qty:       l.Qty,
			LineTotal: raw.RoundBank(2),
		})
		// The order total is rounded once from the raw sum, not derived
		// from the already-rounded line totals.
		total = total.Add(raw)
	}

	bill := &billing.Bill{
		ID:        uuid.New().String(),
		Timestamp: s.now().UTC(),
		Items:     items,
		Total:     total.RoundBank(2),
	}
	if err := s.ledger.Append(ctx, bill); err != nil {
		return nil, errors.Wrap(err, "append bill")
	}
	return bill, nil
}
