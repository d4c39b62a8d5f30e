package catalog

import (
	"context"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns products whose name or code contains query, ignoring case.
// An empty query returns the whole catalog; no match yields an empty slice.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return products, nil
	}

	matches := make([]Product, 0, len(products))

	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.ID), needle) {
			matches = append(matches, p)
		}
	}

	return matches, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}
