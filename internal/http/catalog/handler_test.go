package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
	"github.com/MrJamesThe3rd/kasir/internal/catalog/store"
	handler "github.com/MrJamesThe3rd/kasir/internal/http/catalog"
)

func newRouter() http.Handler {
	svc := catalog.NewService(store.New([]catalog.Product{
		{ID: "PRD-001", Name: "Kopi Arabika Gayo 250g", Price: 85000, Stock: 40, Category: "Minuman"},
		{ID: "PRD-002", Name: "Susu UHT 1L", Price: 21000, Stock: 60, Category: "Minuman"},
	}))

	r := chi.NewRouter()
	r.Route("/products", handler.NewHandler(svc).Routes)

	return r
}

func TestHandler_Search(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantIDs []string
	}{
		{name: "All", target: "/products", wantIDs: []string{"PRD-001", "PRD-002"}},
		{name: "ByName", target: "/products?q=kopi", wantIDs: []string{"PRD-001"}},
		{name: "ByCode", target: "/products?q=prd-002", wantIDs: []string{"PRD-002"}},
		{name: "NoMatch", target: "/products?q=teh", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rec.Code)

			var got []struct {
				ID string `json:"id"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestHandler_Get(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/PRD-001", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"PRD-001","name":"Kopi Arabika Gayo 250g","price":85000,"stock":40,"category":"Minuman"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/PRD-404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
