package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kasir/internal/sale"
	"github.com/MrJamesThe3rd/kasir/internal/sale/memstore"
)

func newSale(code string) *sale.Sale {
	return &sale.Sale{
		ID:       uuid.New(),
		Code:     code,
		IssuedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Items:    []sale.LineItem{{ID: "l1", ProductID: "PRD-1", Price: 100, Qty: 1, Subtotal: 100}},
		Total:    111,
		Status:   sale.StatusPaid,
	}
}

func TestStore_PrependKeepsNewestFirst(t *testing.T) {
	ctx := context.Background()
	seeded := newSale("TRX/2026/10/001")
	s := memstore.New([]*sale.Sale{seeded})

	fresh := newSale("TRX/2026/10/002")
	require.NoError(t, s.PrependSale(ctx, fresh))

	list, err := s.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, fresh.ID, list[0].ID)
	assert.Equal(t, seeded.ID, list[1].ID)

	exists, err := s.CodeExists(ctx, "TRX/2026/10/002")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.CodeExists(ctx, "TRX/2026/10/003")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	orig := newSale("TRX/2026/10/001")
	s := memstore.New([]*sale.Sale{orig})

	// Neither the caller's value nor a listed value may alter the ledger.
	orig.Total = 0

	list, err := s.ListSales(ctx)
	require.NoError(t, err)
	list[0].Items[0].Qty = 99

	got, err := s.GetSale(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(111), got.Total)
	assert.Equal(t, 1, got.Items[0].Qty)

	_, err = s.GetSale(ctx, uuid.New())
	assert.ErrorIs(t, err, sale.ErrNotFound)
}
