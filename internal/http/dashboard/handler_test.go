package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kasir/internal/dashboard"
	handler "github.com/MrJamesThe3rd/kasir/internal/http/dashboard"
	"github.com/MrJamesThe3rd/kasir/internal/notify"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
	"github.com/MrJamesThe3rd/kasir/internal/sale/memstore"
	"github.com/MrJamesThe3rd/kasir/internal/user"
	userMemstore "github.com/MrJamesThe3rd/kasir/internal/user/memstore"
)

type cannedInsights struct {
	gotStats  int
	gotRecent int
}

func (c *cannedInsights) Insights(_ context.Context, stats []dashboard.Stat, recent []dashboard.Transaction) string {
	c.gotStats, c.gotRecent = len(stats), len(recent)
	return "1. Omzet stabil."
}

func newRouter(ins handler.Insighter) http.Handler {
	now := time.Now()
	ledger := sale.NewLedger(memstore.New(sale.SampleSales(now, sale.NewPricer(sale.DefaultTaxRate))))
	users := user.NewService(userMemstore.New(user.SampleUsers(now)), notify.NewQueue(time.Second))

	r := chi.NewRouter()
	r.Route("/dashboard", handler.NewHandler(dashboard.NewService(ledger, users), ins).Routes)

	return r
}

func get(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	return rec
}

func TestHandler_Stats(t *testing.T) {
	rec := get(t, newRouter(&cannedInsights{}), http.MethodGet, "/dashboard/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats []dashboard.Stat
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	require.Len(t, stats, 4)
	assert.Equal(t, "Total Revenue", stats[0].Label)
	assert.Positive(t, stats[0].Value)
}

func TestHandler_Recent(t *testing.T) {
	rec := get(t, newRouter(&cannedInsights{}), http.MethodGet, "/dashboard/recent")
	require.Equal(t, http.StatusOK, rec.Code)

	var txs []dashboard.Transaction
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&txs))
	assert.Len(t, txs, dashboard.RecentLimit)
}

func TestHandler_Analytics(t *testing.T) {
	r := newRouter(&cannedInsights{})

	rec := get(t, r, http.MethodGet, "/dashboard/analytics/weekday")
	require.Equal(t, http.StatusOK, rec.Code)

	var weekly []dashboard.Point
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&weekly))
	assert.Len(t, weekly, 7)

	rec = get(t, r, http.MethodGet, "/dashboard/analytics/monthly?months=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var monthly []dashboard.Point
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&monthly))
	assert.Len(t, monthly, 3)

	rec = get(t, r, http.MethodGet, "/dashboard/analytics/monthly?months=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Insights(t *testing.T) {
	ins := &cannedInsights{}

	rec := get(t, newRouter(ins), http.MethodPost, "/dashboard/insights")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"1. Omzet stabil."}`, rec.Body.String())
	assert.Equal(t, 4, ins.gotStats)
	assert.Equal(t, dashboard.RecentLimit, ins.gotRecent)
}
