// Package checkout drives a single point-of-sale workspace from an open cart,
// through payment, to a sale recorded in the ledger.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
	"github.com/MrJamesThe3rd/kasir/internal/metrics"
	"github.com/MrJamesThe3rd/kasir/internal/notify"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
)

type State int

const (
	Building State = iota
	AwaitingPayment
	PaymentSucceeded
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case AwaitingPayment:
		return "awaiting_payment"
	case PaymentSucceeded:
		return "payment_succeeded"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

const (
	DefaultSuccessDelay  = 1200 * time.Millisecond
	DefaultCommitTimeout = 5 * time.Second
)

// Ledger is where paid sales end up.
type Ledger interface {
	CodeChecker
	Record(ctx context.Context, s *sale.Sale) error
}

// Timer is a scheduled call that can be cancelled before it fires.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. time.AfterFunc is the default.
type Scheduler func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// View is a read-only copy of the session.
type View struct {
	State      State
	Cart       sale.Cart
	Pricing    sale.Snapshot
	Method     sale.PaymentMethod
	AmountPaid int64
	Change     int64
}

// Receipt describes a confirmed payment.
type Receipt struct {
	Code   string
	Total  int64
	Method sale.PaymentMethod
	Paid   int64
	Change int64
}

// Session is one cashier workspace. It is safe for concurrent use; the
// deferred commit runs on its own goroutine.
type Session struct {
	mu sync.Mutex

	ledger   Ledger
	notifier notify.Notifier
	pricer   sale.Pricer
	codes    *CodeGenerator
	metrics  *metrics.CheckoutMetrics
	schedule Scheduler
	now      func() time.Time

	delay         time.Duration
	commitTimeout time.Duration

	state      State
	cart       sale.Cart
	method     sale.PaymentMethod
	amountPaid int64
	change     int64

	pending Timer
	// gen changes whenever the workspace is replaced, so a commit scheduled
	// for an older workspace can tell it is stale.
	gen uint64
}

type Option func(*Session)

func WithSuccessDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

func WithCommitTimeout(d time.Duration) Option {
	return func(s *Session) { s.commitTimeout = d }
}

func WithScheduler(fn Scheduler) Option {
	return func(s *Session) { s.schedule = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(s *Session) { s.metrics = m }
}

func WithCodeGenerator(g *CodeGenerator) Option {
	return func(s *Session) { s.codes = g }
}

// NewSession opens a workspace with an empty cart and a fresh invoice code.
func NewSession(ctx context.Context, ledger Ledger, notifier notify.Notifier, pricer sale.Pricer, opts ...Option) (*Session, error) {
	s := &Session{
		ledger:        ledger,
		notifier:      notifier,
		pricer:        pricer,
		schedule:      afterFunc,
		now:           time.Now,
		delay:         DefaultSuccessDelay,
		commitTimeout: DefaultCommitTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.codes == nil {
		s.codes = NewCodeGenerator(ledger)
		s.codes.now = s.now
	}

	if err := s.resetLocked(ctx); err != nil {
		return nil, fmt.Errorf("opening checkout session: %w", err)
	}

	return s, nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	return View{
		State:      s.state,
		Cart:       s.cart.Clone(),
		Pricing:    s.pricer.Price(s.cart.Items, s.cart.Discount),
		Method:     s.method,
		AmountPaid: s.amountPaid,
		Change:     s.change,
	}
}

func (s *Session) AddProduct(p catalog.Product) (View, error) {
	return s.edit(func(c *sale.Cart) error {
		c.AddProduct(p)
		return nil
	})
}

func (s *Session) SetQuantity(lineID string, qty int) (View, error) {
	return s.edit(func(c *sale.Cart) error {
		c.SetQuantity(lineID, qty)
		return nil
	})
}

func (s *Session) RemoveLineItem(lineID string) (View, error) {
	return s.edit(func(c *sale.Cart) error {
		c.RemoveLineItem(lineID)
		return nil
	})
}

func (s *Session) SetDiscount(amount int64) (View, error) {
	return s.edit(func(c *sale.Cart) error {
		if amount < 0 {
			return ErrInvalidDiscount
		}

		c.Discount = amount

		return nil
	})
}

func (s *Session) SetCustomer(name string) (View, error) {
	return s.edit(func(c *sale.Cart) error {
		c.Customer = name
		return nil
	})
}

// edit applies fn to the cart while building and reprices it afterwards.
func (s *Session) edit(fn func(c *sale.Cart) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Building {
		return s.viewLocked(), s.reject(ErrCartLocked)
	}

	if err := fn(&s.cart); err != nil {
		return s.viewLocked(), s.reject(err)
	}

	s.pricer.Reprice(&s.cart)

	return s.viewLocked(), nil
}

// BeginPayment locks the cart and opens the payment step.
func (s *Session) BeginPayment(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Building {
		return s.viewLocked(), s.reject(ErrInvalidState)
	}

	if s.cart.IsEmpty() {
		return s.viewLocked(), s.reject(ErrEmptyCart)
	}

	// A previous workspace may have failed to get a code.
	if s.cart.Code == "" {
		code, err := s.codes.Next(ctx)
		if err != nil {
			return s.viewLocked(), fmt.Errorf("assigning invoice code: %w", err)
		}

		s.cart.Code = code
	}

	s.state = AwaitingPayment

	return s.viewLocked(), nil
}

// Cancel returns to editing. The cart is kept as is.
func (s *Session) Cancel() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != AwaitingPayment {
		return s.viewLocked(), s.reject(ErrInvalidState)
	}

	s.state = Building

	return s.viewLocked(), nil
}

func (s *Session) SelectMethod(m sale.PaymentMethod) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == PaymentSucceeded {
		return s.viewLocked(), s.reject(ErrInvalidState)
	}

	m, err := sale.ParsePaymentMethod(string(m))
	if err != nil {
		return s.viewLocked(), s.reject(fmt.Errorf("%w: %w", ErrInvalidPayment, err))
	}

	s.method = m

	return s.viewLocked(), nil
}

func (s *Session) SetAmountPaid(amount int64) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == PaymentSucceeded {
		return s.viewLocked(), s.reject(ErrInvalidState)
	}

	if amount < 0 {
		return s.viewLocked(), s.reject(fmt.Errorf("%w: negative amount", ErrInvalidPayment))
	}

	s.amountPaid = amount

	return s.viewLocked(), nil
}

// Confirm settles the bill with method. Cash must cover the total; the
// other methods succeed immediately. The sale is written to the ledger
// after the success delay.
func (s *Session) Confirm(method sale.PaymentMethod, amountPaid int64) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != AwaitingPayment {
		return Receipt{}, s.reject(ErrInvalidState)
	}

	method, err := sale.ParsePaymentMethod(string(method))
	if err != nil {
		return Receipt{}, s.reject(fmt.Errorf("%w: %w", ErrInvalidPayment, err))
	}

	if amountPaid < 0 {
		return Receipt{}, s.reject(fmt.Errorf("%w: negative amount", ErrInvalidPayment))
	}

	s.method = method
	s.amountPaid = amountPaid

	total := s.pricer.Reprice(&s.cart).Total

	if method == sale.MethodCash && amountPaid < total {
		return Receipt{}, s.reject(ErrPaymentInsufficient)
	}

	s.change = 0
	if method == sale.MethodCash {
		s.change = max(0, amountPaid-total)
	}

	s.state = PaymentSucceeded

	gen := s.gen
	s.pending = s.schedule(s.delay, func() { s.commit(gen) })

	return Receipt{
		Code:   s.cart.Code,
		Total:  total,
		Method: method,
		Paid:   amountPaid,
		Change: s.change,
	}, nil
}

// Pending reports whether a paid sale is still waiting to be recorded.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pending != nil
}

// Reset discards the workspace, including a paid sale that has not been
// recorded yet, and starts over with an empty cart.
func (s *Session) Reset(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.resetLocked(ctx); err != nil {
		return s.viewLocked(), err
	}

	return s.viewLocked(), nil
}

func (s *Session) resetLocked(ctx context.Context) error {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}

	if s.cart.Code != "" {
		s.codes.Release(s.cart.Code)
	}

	s.gen++
	s.state = Building
	s.method = sale.MethodCash
	s.amountPaid = 0
	s.change = 0
	s.cart = sale.NewCart("", s.now())

	code, err := s.codes.Next(ctx)
	if err != nil {
		return fmt.Errorf("assigning invoice code: %w", err)
	}

	s.cart.Code = code

	return nil
}

func (s *Session) commit(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.state != PaymentSucceeded {
		return
	}

	s.pending = nil

	ctx, cancel := context.WithTimeout(context.Background(), s.commitTimeout)
	defer cancel()

	sl := sale.FromCart(s.cart, s.method)

	if err := s.ledger.Record(ctx, sl); err != nil {
		slog.Error("failed to record sale", "code", sl.Code, "error", err)
		s.metrics.IncCommitFailure()
		s.notifier.Notify(fmt.Sprintf("Transaksi %s gagal disimpan", sl.Code), notify.SeverityError)

		// Payment can be confirmed again once the ledger is reachable.
		s.state = AwaitingPayment

		return
	}

	slog.Info("sale recorded", "code", sl.Code, "total", sl.Total, "method", sl.Method)
	s.metrics.ObserveSale(string(sl.Method), sl.Total)
	s.notifier.Notify(fmt.Sprintf("Transaksi %s berhasil diselesaikan!", sl.Code), notify.SeveritySuccess)

	if err := s.resetLocked(ctx); err != nil {
		slog.Error("failed to open next cart", "error", err)
		s.notifier.Notify("Kode transaksi baru tidak tersedia", notify.SeverityError)
	}
}

func (s *Session) reject(err error) error {
	s.metrics.IncRejected(reason(err))
	return err
}
