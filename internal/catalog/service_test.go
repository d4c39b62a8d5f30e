package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
)

var sampleProducts = []catalog.Product{
	{ID: "PRD-001", Name: "Kopi Arabika Gayo", Price: 85000, Stock: 40, Category: "Minuman"},
	{ID: "PRD-002", Name: "Teh Melati", Price: 25000, Stock: 120, Category: "Minuman"},
	{ID: "ELK-010", Name: "Mouse Wireless", Price: 150000, Stock: 15, Category: "Elektronik"},
}

func TestService_Search(t *testing.T) {
	type testCase struct {
		name    string
		query   string
		wantIDs []string
	}

	tests := []testCase{
		{name: "EmptyQueryReturnsAll", query: "", wantIDs: []string{"PRD-001", "PRD-002", "ELK-010"}},
		{name: "BlankQueryReturnsAll", query: "   ", wantIDs: []string{"PRD-001", "PRD-002", "ELK-010"}},
		{name: "NameCaseInsensitive", query: "KOPI", wantIDs: []string{"PRD-001"}},
		{name: "CodeSubstring", query: "prd-00", wantIDs: []string{"PRD-001", "PRD-002"}},
		{name: "CodeOnly", query: "elk", wantIDs: []string{"ELK-010"}},
		{name: "NoMatch", query: "durian", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			repo.EXPECT().ListProducts(gomock.Any()).Return(sampleProducts, nil)

			svc := catalog.NewService(repo)
			got, err := svc.Search(context.Background(), tt.query)
			require.NoError(t, err)
			require.NotNil(t, got)

			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestService_Search_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().ListProducts(gomock.Any()).Return(nil, errors.New("boom"))

	_, err := catalog.NewService(repo).Search(context.Background(), "kopi")
	assert.Error(t, err)
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().GetProduct(gomock.Any(), "PRD-404").Return(nil, catalog.ErrNotFound)

	_, err := catalog.NewService(repo).Get(context.Background(), "PRD-404")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
