package checkout

import (
	"github.com/MrJamesThe3rd/kasir/internal/checkout"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
)

type lineItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Qty         int    `json:"qty"`
	Subtotal    int64  `json:"subtotal"`
}

type cartResponse struct {
	Code     string             `json:"code"`
	Date     string             `json:"date"`
	Time     string             `json:"time"`
	Customer string             `json:"customer"`
	Items    []lineItemResponse `json:"items"`
	Discount int64              `json:"discount"`
	Total    int64              `json:"total"`
}

type pricingResponse struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

type sessionResponse struct {
	State      string             `json:"state"`
	Cart       cartResponse       `json:"cart"`
	Pricing    pricingResponse    `json:"pricing"`
	Method     sale.PaymentMethod `json:"method"`
	AmountPaid int64              `json:"amount_paid"`
	Change     int64              `json:"change"`
}

type receiptResponse struct {
	Code   string             `json:"code"`
	Total  int64              `json:"total"`
	Method sale.PaymentMethod `json:"method"`
	Paid   int64              `json:"paid"`
	Change int64              `json:"change"`
}

func toResponse(v checkout.View) sessionResponse {
	items := make([]lineItemResponse, len(v.Cart.Items))
	for i, li := range v.Cart.Items {
		items[i] = lineItemResponse{
			ID:          li.ID,
			ProductID:   li.ProductID,
			ProductName: li.ProductName,
			Price:       li.Price,
			Qty:         li.Qty,
			Subtotal:    li.Subtotal,
		}
	}

	return sessionResponse{
		State: v.State.String(),
		Cart: cartResponse{
			Code:     v.Cart.Code,
			Date:     v.Cart.Date(),
			Time:     v.Cart.Time(),
			Customer: v.Cart.Customer,
			Items:    items,
			Discount: v.Cart.Discount,
			Total:    v.Cart.Total,
		},
		Pricing: pricingResponse{
			Subtotal: v.Pricing.Subtotal,
			Discount: v.Pricing.Discount,
			Tax:      v.Pricing.Tax,
			Total:    v.Pricing.Total,
		},
		Method:     v.Method,
		AmountPaid: v.AmountPaid,
		Change:     v.Change,
	}
}

func toReceiptResponse(r checkout.Receipt) receiptResponse {
	return receiptResponse{Code: r.Code, Total: r.Total, Method: r.Method, Paid: r.Paid, Change: r.Change}
}
