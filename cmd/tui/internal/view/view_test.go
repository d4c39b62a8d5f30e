package view

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/kasir/internal/catalog/store"
	"github.com/MrJamesThe3rd/kasir/internal/checkout"
	"github.com/MrJamesThe3rd/kasir/internal/dashboard"
	"github.com/MrJamesThe3rd/kasir/internal/notify"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
	saleMemstore "github.com/MrJamesThe3rd/kasir/internal/sale/memstore"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "120000", want: 120000},
		{in: "120.000", want: 120000},
		{in: " 1,500 ", want: 1500},
		{in: "-5", want: -5},
		{in: "12k", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Error(t, validateAmount("-5"))
	assert.NoError(t, validateAmount("0"))
}

func TestBarChart_ScalesToPeak(t *testing.T) {
	out := barChart([]dashboard.Point{
		{Label: "Mon", Revenue: 100, Sales: 1},
		{Label: "Tue", Revenue: 50, Sales: 1},
		{Label: "Wed", Revenue: 0},
	}, "63")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, barWidth, strings.Count(lines[0], "█"))
	assert.Equal(t, barWidth/2, strings.Count(lines[1], "█"))
	assert.Zero(t, strings.Count(lines[2], "█"))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Amount paid does not cover the total.", describe(checkout.ErrPaymentInsufficient))
	assert.Equal(t, "Add at least one product before paying.", describe(checkout.ErrEmptyCart))
}

func TestPOSModel_AddAndPay(t *testing.T) {
	ctx := context.Background()
	products := []catalog.Product{
		{ID: "PRD-1", Name: "Kopi Susu", Price: 100000, Stock: 5, Category: "Minuman"},
	}

	session, err := checkout.NewSession(ctx,
		sale.NewLedger(saleMemstore.New(nil)),
		notify.NewQueue(time.Second),
		sale.NewPricer(sale.DefaultTaxRate),
	)
	require.NoError(t, err)

	var model tea.Model = NewPOSModel(session, catalog.NewService(catalogStore.New(products)))
	pos := model.(POSModel)

	model, _ = pos.Update(pos.searchCmd("")())
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	require.Equal(t, posStateSearch, model.(POSModel).state)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	pos = model.(POSModel)
	assert.Equal(t, posStateCart, pos.state)
	require.Len(t, session.View().Cart.Items, 1)
	assert.Equal(t, int64(111000), pos.view.Pricing.Total)

	model, _ = pos.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	assert.Equal(t, 2, session.View().Cart.Items[0].Qty)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	require.NotNil(t, cmd)

	model, _ = model.Update(cmd())
	pos = model.(POSModel)
	assert.Equal(t, posStatePayment, pos.state)
	assert.Equal(t, checkout.AwaitingPayment, session.View().State)

	model, _ = pos.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, posStateCart, model.(POSModel).state)
	assert.Equal(t, checkout.Building, session.View().State)
}
