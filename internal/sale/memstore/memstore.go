// Package memstore keeps the sale ledger in process memory.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/sale"
)

type Store struct {
	mu    sync.RWMutex
	sales []*sale.Sale // newest first
	codes map[string]struct{}
}

// New seeds the store with existing sales, which must already be newest first.
func New(seed []*sale.Sale) *Store {
	s := &Store{
		sales: make([]*sale.Sale, 0, len(seed)),
		codes: make(map[string]struct{}, len(seed)),
	}

	for _, sl := range seed {
		s.sales = append(s.sales, clone(sl))
		s.codes[sl.Code] = struct{}{}
	}

	return s
}

func (s *Store) PrependSale(_ context.Context, sl *sale.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = slices.Insert(s.sales, 0, clone(sl))
	s.codes[sl.Code] = struct{}{}

	return nil
}

func (s *Store) ListSales(_ context.Context) ([]*sale.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*sale.Sale, len(s.sales))
	for i, sl := range s.sales {
		out[i] = clone(sl)
	}

	return out, nil
}

func (s *Store) GetSale(_ context.Context, id uuid.UUID) (*sale.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sl := range s.sales {
		if sl.ID == id {
			return clone(sl), nil
		}
	}

	return nil, sale.ErrNotFound
}

func (s *Store) CodeExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.codes[code]

	return ok, nil
}

func clone(sl *sale.Sale) *sale.Sale {
	c := *sl
	c.Items = slices.Clone(sl.Items)

	return &c
}
