package sale

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
)

type sampleLine struct {
	product catalog.Product
	qty     int
}

var (
	kopi   = catalog.Product{ID: "PRD-001", Name: "Kopi Arabika Gayo 250g", Price: 85000}
	teh    = catalog.Product{ID: "PRD-002", Name: "Teh Melati Premium", Price: 25000}
	beras  = catalog.Product{ID: "PRD-003", Name: "Beras Pandan Wangi 5kg", Price: 78500}
	minyak = catalog.Product{ID: "PRD-004", Name: "Minyak Goreng 2L", Price: 38000}
	susu   = catalog.Product{ID: "PRD-006", Name: "Susu UHT Full Cream 1L", Price: 21000}
	mouse  = catalog.Product{ID: "PRD-009", Name: "Mouse Wireless", Price: 150000}
)

var sampleSales = []struct {
	daysAgo  int
	hour     int
	customer string
	discount int64
	method   PaymentMethod
	lines    []sampleLine
}{
	{daysAgo: 0, hour: 9, customer: "Budi Santoso", method: MethodCash, lines: []sampleLine{{kopi, 1}, {susu, 2}}},
	{daysAgo: 1, hour: 14, customer: "", method: MethodQRCode, lines: []sampleLine{{teh, 3}}},
	{daysAgo: 3, hour: 11, customer: "Siti Rahayu", discount: 10000, method: MethodTransfer, lines: []sampleLine{{beras, 2}, {minyak, 1}}},
	{daysAgo: 6, hour: 16, customer: "CV Maju Jaya", method: MethodTransfer, lines: []sampleLine{{mouse, 4}}},
	{daysAgo: 12, hour: 10, customer: "", method: MethodCash, lines: []sampleLine{{minyak, 2}, {teh, 1}}},
	{daysAgo: 20, hour: 13, customer: "Andi Wijaya", discount: 5000, method: MethodQRCode, lines: []sampleLine{{kopi, 2}}},
	{daysAgo: 34, hour: 15, customer: "Dewi Lestari", method: MethodCash, lines: []sampleLine{{beras, 1}, {susu, 4}}},
	{daysAgo: 41, hour: 9, customer: "", method: MethodCash, lines: []sampleLine{{teh, 2}, {kopi, 1}}},
	{daysAgo: 55, hour: 17, customer: "Toko Sumber Rejeki", discount: 50000, method: MethodTransfer, lines: []sampleLine{{mouse, 2}, {beras, 3}}},
}

// SampleSales returns demo ledger contents relative to now, newest first.
func SampleSales(now time.Time, p Pricer) []*Sale {
	sales := make([]*Sale, 0, len(sampleSales))

	for i, seed := range sampleSales {
		day := now.AddDate(0, 0, -seed.daysAgo)
		issued := time.Date(day.Year(), day.Month(), day.Day(), seed.hour, 0, 0, 0, now.Location())
		code := fmt.Sprintf("TRX/%d/%02d/%03d", issued.Year(), int(issued.Month()), 900-i)

		cart := NewCart(code, issued)
		cart.Customer = seed.customer
		cart.Discount = seed.discount

		for _, l := range seed.lines {
			cart.AddProduct(l.product)
			cart.SetQuantity(cart.Items[len(cart.Items)-1].ID, l.qty)
		}

		p.Reprice(&cart)
		sales = append(sales, FromCart(cart, seed.method))
	}

	return sales
}
