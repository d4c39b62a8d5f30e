package store

import (
	"context"
	"slices"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
)

// Store serves a catalog loaded once at startup. It is never written to,
// so it needs no locking.
type Store struct {
	products []catalog.Product
	byID     map[string]int
}

func New(products []catalog.Product) *Store {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	return &Store{
		products: slices.Clone(products),
		byID:     byID,
	}
}

func (s *Store) ListProducts(_ context.Context) ([]catalog.Product, error) {
	return slices.Clone(s.products), nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}

	p := s.products[idx]

	return &p, nil
}
