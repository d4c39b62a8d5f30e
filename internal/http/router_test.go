package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/kasir/internal/catalog/store"
	"github.com/MrJamesThe3rd/kasir/internal/checkout"
	"github.com/MrJamesThe3rd/kasir/internal/dashboard"
	api "github.com/MrJamesThe3rd/kasir/internal/http"
	catalogHandler "github.com/MrJamesThe3rd/kasir/internal/http/catalog"
	checkoutHandler "github.com/MrJamesThe3rd/kasir/internal/http/checkout"
	dashboardHandler "github.com/MrJamesThe3rd/kasir/internal/http/dashboard"
	notifyHandler "github.com/MrJamesThe3rd/kasir/internal/http/notify"
	saleHandler "github.com/MrJamesThe3rd/kasir/internal/http/sale"
	userHandler "github.com/MrJamesThe3rd/kasir/internal/http/user"
	"github.com/MrJamesThe3rd/kasir/internal/insights"
	"github.com/MrJamesThe3rd/kasir/internal/metrics"
	"github.com/MrJamesThe3rd/kasir/internal/notify"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
	"github.com/MrJamesThe3rd/kasir/internal/sale/memstore"
	"github.com/MrJamesThe3rd/kasir/internal/user"
	userMemstore "github.com/MrJamesThe3rd/kasir/internal/user/memstore"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	toasts := notify.NewQueue(time.Second)
	ledger := sale.NewLedger(memstore.New(nil))
	products := catalog.NewService(catalogStore.New(nil))
	users := user.NewService(userMemstore.New(nil), toasts)

	session, err := checkout.NewSession(context.Background(), ledger, toasts, sale.NewPricer(sale.DefaultTaxRate),
		checkout.WithMetrics(metrics.NewCheckoutMetrics(reg)))
	require.NoError(t, err)

	return api.New(api.Handlers{
		Products:      catalogHandler.NewHandler(products),
		Checkout:      checkoutHandler.NewHandler(session, products),
		Sales:         saleHandler.NewHandler(ledger),
		Users:         userHandler.NewHandler(users),
		Dashboard:     dashboardHandler.NewHandler(dashboard.NewService(ledger, users), insights.NewService(insights.Config{})),
		Notifications: notifyHandler.NewHandler(toasts),
	}, []string{"http://localhost:3000"}, reg)
}

func TestRouter(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{name: "Health", method: http.MethodGet, target: "/healthz", want: http.StatusNoContent},
		{name: "Products", method: http.MethodGet, target: "/api/v1/products", want: http.StatusOK},
		{name: "Checkout", method: http.MethodGet, target: "/api/v1/checkout", want: http.StatusOK},
		{name: "Sales", method: http.MethodGet, target: "/api/v1/sales", want: http.StatusOK},
		{name: "Users", method: http.MethodGet, target: "/api/v1/users", want: http.StatusOK},
		{name: "Stats", method: http.MethodGet, target: "/api/v1/dashboard/stats", want: http.StatusOK},
		{name: "Notifications", method: http.MethodGet, target: "/api/v1/notifications", want: http.StatusOK},
		{name: "Unknown", method: http.MethodGet, target: "/api/v1/invoices", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_InsightsFallbackWithoutKey(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/insights", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), insights.Fallback)
}

func TestRouter_Metrics(t *testing.T) {
	r := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout/payment", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `checkout_rejected_total{reason="empty_cart"} 1`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/users", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
