package sale

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
)

// LineItem is one product in a cart. Subtotal is always Price*Qty.
type LineItem struct {
	ID          string
	ProductID   string
	ProductName string
	Price       int64
	Qty         int
	Subtotal    int64
}

// Cart is the editable draft of a sale. Items keep insertion order.
// Total is a cached projection of Pricer.Price and is refreshed by Pricer.Reprice.
type Cart struct {
	Code     string
	IssuedAt time.Time
	Customer string
	Items    []LineItem
	Discount int64
	Total    int64
}

func NewCart(code string, issuedAt time.Time) Cart {
	return Cart{Code: code, IssuedAt: issuedAt}
}

func (c *Cart) Date() string { return c.IssuedAt.Format(time.DateOnly) }
func (c *Cart) Time() string { return c.IssuedAt.Format("15:04") }

// AddProduct bumps the quantity of an existing line for p, or appends a new
// line priced at p.Price as of now.
func (c *Cart) AddProduct(p catalog.Product) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].setQty(c.Items[i].Qty + 1)
			return
		}
	}

	c.Items = append(c.Items, LineItem{
		ID:          uuid.NewString(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Qty:         1,
		Subtotal:    p.Price,
	})
}

// SetQuantity clamps qty to at least 1. Unknown line ids are ignored.
func (c *Cart) SetQuantity(lineID string, qty int) {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			c.Items[i].setQty(qty)
			return
		}
	}
}

// RemoveLineItem drops the line. Unknown line ids are ignored.
func (c *Cart) RemoveLineItem(lineID string) {
	c.Items = slices.DeleteFunc(c.Items, func(li LineItem) bool {
		return li.ID == lineID
	})
}

func (c *Cart) Line(lineID string) (LineItem, bool) {
	for _, li := range c.Items {
		if li.ID == lineID {
			return li, true
		}
	}

	return LineItem{}, false
}

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Clone returns a deep copy safe to hand to readers.
func (c Cart) Clone() Cart {
	c.Items = slices.Clone(c.Items)
	return c
}

func (li *LineItem) setQty(qty int) {
	li.Qty = max(1, qty)
	li.Subtotal = li.Price * int64(li.Qty)
}
