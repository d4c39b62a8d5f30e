package sale

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("sale not found")
	ErrInvalidSale = errors.New("invalid sale")
)

// Status is the settlement state of a finalized sale.
type Status string

const (
	StatusPaid   Status = "paid"
	StatusUnpaid Status = "unpaid"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPaid, StatusUnpaid:
		return st, nil
	}

	return "", fmt.Errorf("unknown sale status %q", s)
}

// PaymentMethod is how the customer settled the bill.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
	MethodQRCode   PaymentMethod = "qr_code"
)

var PaymentMethods = []PaymentMethod{MethodCash, MethodTransfer, MethodQRCode}

// ParsePaymentMethod accepts the canonical values plus the labels printed on
// the till ("tunai", "qris").
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash", "tunai":
		return MethodCash, nil
	case "transfer":
		return MethodTransfer, nil
	case "qr_code", "qrcode", "qris":
		return MethodQRCode, nil
	}

	return "", fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) Label() string {
	switch m {
	case MethodCash:
		return "Cash"
	case MethodTransfer:
		return "Transfer"
	case MethodQRCode:
		return "QRIS"
	}

	return string(m)
}

// Sale is a finalized, immutable record in the ledger.
type Sale struct {
	ID       uuid.UUID
	Code     string
	IssuedAt time.Time
	Customer string
	Items    []LineItem
	Discount int64
	Total    int64
	Status   Status
	Method   PaymentMethod
}

func (s *Sale) Date() string { return s.IssuedAt.Format(time.DateOnly) }
func (s *Sale) Time() string { return s.IssuedAt.Format("15:04") }

// FromCart freezes a cart into a paid sale with a fresh identifier.
func FromCart(c Cart, method PaymentMethod) *Sale {
	return &Sale{
		ID:       uuid.New(),
		Code:     c.Code,
		IssuedAt: c.IssuedAt,
		Customer: c.Customer,
		Items:    slices.Clone(c.Items),
		Discount: c.Discount,
		Total:    c.Total,
		Status:   StatusPaid,
		Method:   method,
	}
}
