package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kasir/internal/app"
	"github.com/MrJamesThe3rd/kasir/internal/checkout"
	"github.com/MrJamesThe3rd/kasir/internal/config"
)

func TestNew_Memory(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CATALOG_FILE", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	ctx := context.Background()

	products, err := a.Catalog.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, products, 10)

	sales, err := a.Ledger.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, sales)

	users, err := a.Users.List(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, users)

	v := a.Checkout.View()
	assert.Equal(t, checkout.Building, v.State)

	taken, err := a.Ledger.CodeTaken(ctx, v.Cart.Code)
	require.NoError(t, err)
	assert.False(t, taken)

	mfs, err := a.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestNew_MissingCatalogFile(t *testing.T) {
	t.Setenv("CATALOG_FILE", "testdata/does-not-exist.csv")

	cfg, err := config.Load()
	require.NoError(t, err)

	_, err = app.New(context.Background(), cfg)
	assert.Error(t, err)
}
