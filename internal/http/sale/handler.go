package sale

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/http/httpio"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
)

// Handler exposes the ledger read-only.
type Handler struct {
	ledger *sale.Ledger
}

func NewHandler(ledger *sale.Ledger) *Handler {
	return &Handler{ledger: ledger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type lineItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Qty         int    `json:"qty"`
	Subtotal    int64  `json:"subtotal"`
}

type saleResponse struct {
	ID       uuid.UUID          `json:"id"`
	Code     string             `json:"code"`
	IssuedAt time.Time          `json:"issued_at"`
	Date     string             `json:"date"`
	Time     string             `json:"time"`
	Customer string             `json:"customer"`
	Items    []lineItemResponse `json:"items"`
	Discount int64              `json:"discount"`
	Total    int64              `json:"total"`
	Status   sale.Status        `json:"status"`
	Method   sale.PaymentMethod `json:"method"`
}

func toResponse(s *sale.Sale) saleResponse {
	items := make([]lineItemResponse, len(s.Items))
	for i, li := range s.Items {
		items[i] = lineItemResponse(li)
	}

	return saleResponse{
		ID:       s.ID,
		Code:     s.Code,
		IssuedAt: s.IssuedAt,
		Date:     s.Date(),
		Time:     s.Time(),
		Customer: s.Customer,
		Items:    items,
		Discount: s.Discount,
		Total:    s.Total,
		Status:   s.Status,
		Method:   s.Method,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sales, err := h.ledger.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toResponse(s)
	}

	httpio.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	s, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	httpio.JSON(w, http.StatusOK, toResponse(s))
}
