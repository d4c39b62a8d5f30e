package sale

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	// PrependSale stores s so that it is listed before every earlier sale.
	PrependSale(ctx context.Context, s *Sale) error
	ListSales(ctx context.Context) ([]*Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*Sale, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// Ledger is the append-only record of finalized sales, newest first.
// It exposes no way to edit or remove a recorded sale.
type Ledger struct {
	repo Repository
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

func (l *Ledger) Record(ctx context.Context, s *Sale) error {
	if err := validate(s); err != nil {
		return err
	}

	if err := l.repo.PrependSale(ctx, s); err != nil {
		return fmt.Errorf("recording sale %s: %w", s.Code, err)
	}

	return nil
}

func (l *Ledger) List(ctx context.Context) ([]*Sale, error) {
	return l.repo.ListSales(ctx)
}

func (l *Ledger) Get(ctx context.Context, id uuid.UUID) (*Sale, error) {
	return l.repo.GetSale(ctx, id)
}

// CodeTaken reports whether an invoice code is already used by a recorded sale.
func (l *Ledger) CodeTaken(ctx context.Context, code string) (bool, error) {
	return l.repo.CodeExists(ctx, code)
}

func validate(s *Sale) error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: nil sale", ErrInvalidSale)
	case s.ID == uuid.Nil:
		return fmt.Errorf("%w: missing id", ErrInvalidSale)
	case s.Code == "":
		return fmt.Errorf("%w: missing invoice code", ErrInvalidSale)
	case len(s.Items) == 0:
		return fmt.Errorf("%w: no line items", ErrInvalidSale)
	}

	if _, err := ParseStatus(string(s.Status)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSale, err)
	}

	return nil
}
