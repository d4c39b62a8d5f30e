package checkout

import (
	"errors"
	"fmt"
)

// ErrRejected is wrapped by every validation failure. A rejected call leaves
// the session unchanged and may be retried.
var ErrRejected = errors.New("checkout rejected")

var (
	ErrEmptyCart           = fmt.Errorf("%w: cart is empty", ErrRejected)
	ErrPaymentInsufficient = fmt.Errorf("%w: amount paid is less than total", ErrRejected)
	ErrCartLocked          = fmt.Errorf("%w: cart can only be edited while building", ErrRejected)
	ErrInvalidDiscount     = fmt.Errorf("%w: discount must not be negative", ErrRejected)
	ErrInvalidPayment      = fmt.Errorf("%w: invalid payment", ErrRejected)
	ErrInvalidState        = fmt.Errorf("%w: action not allowed in current state", ErrRejected)
)

var ErrCodeSpaceExhausted = errors.New("no invoice codes left for this month")

// reason is the metrics label for a rejection.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrPaymentInsufficient):
		return "payment_insufficient"
	case errors.Is(err, ErrCartLocked):
		return "cart_locked"
	case errors.Is(err, ErrInvalidDiscount):
		return "invalid_discount"
	case errors.Is(err, ErrInvalidPayment):
		return "invalid_payment"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	}

	return "other"
}
