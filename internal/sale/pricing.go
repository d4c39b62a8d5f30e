package sale

import "github.com/shopspring/decimal"

// DefaultTaxRate is Indonesian VAT (PPN).
var DefaultTaxRate = decimal.RequireFromString("0.11")

// Snapshot is the derived price breakdown of a cart. It is never stored.
type Snapshot struct {
	Subtotal int64
	Discount int64
	Tax      int64
	Total    int64
}

// TaxableBase is the subtotal after discount, floored at zero.
func (s Snapshot) TaxableBase() int64 {
	return max(0, s.Subtotal-s.Discount)
}

type Pricer struct {
	rate decimal.Decimal
}

func NewPricer(rate decimal.Decimal) Pricer {
	return Pricer{rate: rate}
}

func (p Pricer) Rate() decimal.Decimal { return p.rate }

// Price is pure: tax is the taxable base times the rate, rounded half away
// from zero to a whole unit. A discount larger than the subtotal zeroes the
// bill rather than producing a negative total.
func (p Pricer) Price(items []LineItem, discount int64) Snapshot {
	var subtotal int64
	for _, li := range items {
		subtotal += li.Subtotal
	}

	snap := Snapshot{Subtotal: subtotal, Discount: discount}
	base := snap.TaxableBase()

	snap.Tax = decimal.NewFromInt(base).Mul(p.rate).Round(0).IntPart()
	snap.Total = base + snap.Tax

	return snap
}

// Reprice recomputes c's pricing and refreshes its cached Total.
func (p Pricer) Reprice(c *Cart) Snapshot {
	snap := p.Price(c.Items, c.Discount)
	c.Total = snap.Total

	return snap
}
