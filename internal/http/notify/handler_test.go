package notify_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/MrJamesThe3rd/kasir/internal/http/notify"
	"github.com/MrJamesThe3rd/kasir/internal/notify"
)

func TestHandler(t *testing.T) {
	q := notify.NewQueue(time.Minute)
	toast := q.Notify("Transaksi TRX/2026/10/417 berhasil diselesaikan!", notify.SeveritySuccess)

	r := chi.NewRouter()
	r.Route("/notifications", handler.NewHandler(q).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"severity":"success"`)
	assert.Contains(t, rec.Body.String(), toast.ID.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/notifications/"+toast.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/notifications/"+toast.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	assert.JSONEq(t, `[]`, rec.Body.String())
}
