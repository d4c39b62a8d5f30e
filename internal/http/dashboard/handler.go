package dashboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kasir/internal/dashboard"
	"github.com/MrJamesThe3rd/kasir/internal/http/httpio"
)

type Insighter interface {
	Insights(ctx context.Context, stats []dashboard.Stat, recent []dashboard.Transaction) string
}

type Handler struct {
	svc      *dashboard.Service
	insights Insighter
}

func NewHandler(svc *dashboard.Service, insights Insighter) *Handler {
	return &Handler{svc: svc, insights: insights}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.stats)
	r.Get("/recent", h.recent)
	r.Get("/analytics/weekday", h.weekday)
	r.Get("/analytics/monthly", h.monthly)
	r.Post("/insights", h.generateInsights)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpio.JSON(w, http.StatusOK, stats)
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.RecentTransactions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpio.JSON(w, http.StatusOK, txs)
}

func (h *Handler) weekday(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.RevenueByWeekday(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpio.JSON(w, http.StatusOK, points)
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	months := dashboard.DefaultMonths

	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 36 {
			http.Error(w, "months must be between 1 and 36", http.StatusBadRequest)
			return
		}

		months = n
	}

	points, err := h.svc.RevenueByMonth(r.Context(), months)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpio.JSON(w, http.StatusOK, points)
}

type insightsResponse struct {
	Text string `json:"text"`
}

func (h *Handler) generateInsights(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recent, err := h.svc.RecentTransactions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpio.JSON(w, http.StatusOK, insightsResponse{Text: h.insights.Insights(r.Context(), stats, recent)})
}
