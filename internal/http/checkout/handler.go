package checkout

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
	"github.com/MrJamesThe3rd/kasir/internal/checkout"
	"github.com/MrJamesThe3rd/kasir/internal/http/httpio"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
)

type Handler struct {
	session  *checkout.Session
	products *catalog.Service
}

func NewHandler(session *checkout.Session, products *catalog.Service) *Handler {
	return &Handler{session: session, products: products}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.view)
	r.Post("/reset", h.reset)

	r.Post("/items", h.addItem)
	r.Patch("/items/{lineID}", h.setQuantity)
	r.Delete("/items/{lineID}", h.removeItem)
	r.Put("/discount", h.setDiscount)
	r.Put("/customer", h.setCustomer)

	r.Post("/payment", h.beginPayment)
	r.Delete("/payment", h.cancelPayment)
	r.Put("/payment/method", h.selectMethod)
	r.Put("/payment/amount", h.setAmountPaid)
	r.Post("/payment/confirm", h.confirm)
}

// respond writes the session view, mapping rejections to 422.
func respond(w http.ResponseWriter, v checkout.View, err error) {
	if err != nil {
		writeError(w, err)
		return
	}

	httpio.JSON(w, http.StatusOK, toResponse(v))
}

func writeError(w http.ResponseWriter, err error) {
	var verr *httpio.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, checkout.ErrRejected):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, checkout.ErrCodeSpaceExhausted):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	httpio.JSON(w, http.StatusOK, toResponse(h.session.View()))
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	v, err := h.session.Reset(r.Context())
	respond(w, v, err)
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpio.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.products.Get(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}

		writeError(w, err)

		return
	}

	v, err := h.session.AddProduct(*p)
	respond(w, v, err)
}

type setQuantityRequest struct {
	Qty *int `json:"qty" validate:"required"`
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := httpio.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.session.SetQuantity(chi.URLParam(r, "lineID"), *req.Qty)
	respond(w, v, err)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	v, err := h.session.RemoveLineItem(chi.URLParam(r, "lineID"))
	respond(w, v, err)
}

type amountRequest struct {
	Amount *int64 `json:"amount" validate:"required"`
}

func (h *Handler) setDiscount(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := httpio.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.session.SetDiscount(*req.Amount)
	respond(w, v, err)
}

type setCustomerRequest struct {
	Name string `json:"name" validate:"max=120"`
}

func (h *Handler) setCustomer(w http.ResponseWriter, r *http.Request) {
	var req setCustomerRequest
	if err := httpio.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.session.SetCustomer(req.Name)
	respond(w, v, err)
}

func (h *Handler) beginPayment(w http.ResponseWriter, r *http.Request) {
	v, err := h.session.BeginPayment(r.Context())
	respond(w, v, err)
}

func (h *Handler) cancelPayment(w http.ResponseWriter, r *http.Request) {
	v, err := h.session.Cancel()
	respond(w, v, err)
}

type selectMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

func (h *Handler) selectMethod(w http.ResponseWriter, r *http.Request) {
	var req selectMethodRequest
	if err := httpio.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method, err := sale.ParsePaymentMethod(req.Method)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.session.SelectMethod(method)
	respond(w, v, err)
}

func (h *Handler) setAmountPaid(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := httpio.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := h.session.SetAmountPaid(*req.Amount)
	respond(w, v, err)
}

type confirmRequest struct {
	Method     string `json:"method" validate:"required"`
	AmountPaid int64  `json:"amount_paid" validate:"min=0"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := httpio.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method, err := sale.ParsePaymentMethod(req.Method)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	receipt, err := h.session.Confirm(method, req.AmountPaid)
	if err != nil {
		writeError(w, err)
		return
	}

	httpio.JSON(w, http.StatusOK, toReceiptResponse(receipt))
}
