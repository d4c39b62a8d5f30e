package sale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/kasir/internal/sale"
)

func paidSale() *sale.Sale {
	c := newCart()
	c.AddProduct(kopi)
	sale.NewPricer(sale.DefaultTaxRate).Reprice(&c)

	return sale.FromCart(c, sale.MethodCash)
}

func TestLedger_Record(t *testing.T) {
	type testCase struct {
		name      string
		sale      func() *sale.Sale
		setupMock func(m *sale.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			sale: paidSale,
			setupMock: func(m *sale.MockRepository) {
				m.EXPECT().PrependSale(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "NoItems",
			sale: func() *sale.Sale {
				s := paidSale()
				s.Items = nil
				return s
			},
			wantErr: sale.ErrInvalidSale,
		},
		{
			name: "MissingID",
			sale: func() *sale.Sale {
				s := paidSale()
				s.ID = uuid.Nil
				return s
			},
			wantErr: sale.ErrInvalidSale,
		},
		{
			name: "UnknownStatus",
			sale: func() *sale.Sale {
				s := paidSale()
				s.Status = "refunded"
				return s
			},
			wantErr: sale.ErrInvalidSale,
		},
		{
			name: "RepoError",
			sale: paidSale,
			setupMock: func(m *sale.MockRepository) {
				m.EXPECT().PrependSale(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := sale.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := sale.NewLedger(repo).Record(context.Background(), tt.sale())

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			if errors.Is(tt.wantErr, sale.ErrInvalidSale) {
				assert.ErrorIs(t, err, sale.ErrInvalidSale)
			}
		})
	}
}

func TestLedger_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := sale.NewMockRepository(ctrl)
	repo.EXPECT().ListSales(gomock.Any()).Return([]*sale.Sale{paidSale(), paidSale()}, nil)

	got, err := sale.NewLedger(repo).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFromCart(t *testing.T) {
	c := newCart()
	c.Customer = "Budi"
	c.AddProduct(kopi)
	c.Discount = 1000
	sale.NewPricer(sale.DefaultTaxRate).Reprice(&c)

	s := sale.FromCart(c, sale.MethodTransfer)

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, sale.StatusPaid, s.Status)
	assert.Equal(t, sale.MethodTransfer, s.Method)
	assert.Equal(t, c.Code, s.Code)
	assert.Equal(t, c.Total, s.Total)
	assert.Equal(t, "Budi", s.Customer)

	// The sale must not share line storage with the cart.
	c.SetQuantity(c.Items[0].ID, 5)
	assert.Equal(t, 1, s.Items[0].Qty)
}

func TestParsePaymentMethod(t *testing.T) {
	tests := map[string]sale.PaymentMethod{
		"cash":     sale.MethodCash,
		"Tunai":    sale.MethodCash,
		"transfer": sale.MethodTransfer,
		"QRIS":     sale.MethodQRCode,
		"qr_code":  sale.MethodQRCode,
	}

	for in, want := range tests {
		got, err := sale.ParsePaymentMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := sale.ParsePaymentMethod("card")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	got, err := sale.ParseStatus("Paid")
	require.NoError(t, err)
	assert.Equal(t, sale.StatusPaid, got)

	_, err = sale.ParseStatus("void")
	assert.Error(t, err)
}

func TestSampleSales(t *testing.T) {
	now := time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)
	sales := sale.SampleSales(now, sale.NewPricer(sale.DefaultTaxRate))

	require.NotEmpty(t, sales)

	codes := make(map[string]bool)

	for i, s := range sales {
		assert.False(t, codes[s.Code], "duplicate code %s", s.Code)
		codes[s.Code] = true

		assert.NotEmpty(t, s.Items)
		assert.Equal(t, sale.StatusPaid, s.Status)

		if i > 0 {
			assert.False(t, s.IssuedAt.After(sales[i-1].IssuedAt), "sample must be newest first")
		}
	}

	// Budi buys 1 kopi and 2 susu: (85000 + 42000) * 1.11.
	assert.Equal(t, int64(140970), sales[0].Total)
}
