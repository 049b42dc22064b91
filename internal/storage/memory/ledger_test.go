package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/smart-retail/internal/domain/billing"
)

func TestLedger_AppendBackfillsIDAndTimestamp(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	bill := &billing.Bill{Total: decimal.RequireFromString("150")}
	require.NoError(t, ledger.Append(ctx, bill))

	assert.NotEmpty(t, bill.ID)
	assert.False(t, bill.Timestamp.IsZero())

	// Preset values are kept.
	preset := &billing.Bill{
		ID:        "bill-1",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Total:     decimal.Zero,
	}
	require.NoError(t, ledger.Append(ctx, preset))
	assert.Equal(t, "bill-1", preset.ID)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), preset.Timestamp)
}

func TestLedger_ListMostRecentFirst(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		require.NoError(t, ledger.Append(ctx, &billing.Bill{ID: id, Total: decimal.Zero}))
	}

	bills, err := ledger.ListMostRecentFirst(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, "third", bills[0].ID)
	assert.Equal(t, "second", bills[1].ID)
	assert.Equal(t, "first", bills[2].ID)
}

func TestLedger_ListDoesNotAliasStorage(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, &billing.Bill{
		ID:    "bill-1",
		Items: []billing.LineItem{{SKU: "12345", Qty: 1, Price: decimal.Zero, LineTotal: decimal.Zero}},
		Total: decimal.Zero,
	}))

	bills, err := ledger.ListMostRecentFirst(ctx)
	require.NoError(t, err)
	bills[0].ID = "mutated"

	again, err := ledger.ListMostRecentFirst(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bill-1", again[0].ID)
}

func TestLedger_AppendCopiesItems(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	items := []billing.LineItem{{SKU: "12345", Qty: 1, Price: decimal.Zero, LineTotal: decimal.Zero}}
	require.NoError(t, ledger.Append(ctx, &billing.Bill{ID: "bill-1", Items: items, Total: decimal.Zero}))

	// Mutating the caller's slice after Append must not reach the ledger.
	items[0].SKU = "mutated"

	bills, err := ledger.ListMostRecentFirst(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12345", bills[0].Items[0].SKU)
}
