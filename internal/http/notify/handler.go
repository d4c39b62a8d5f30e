package notify

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/http/httpio"
	"github.com/MrJamesThe3rd/kasir/internal/notify"
)

type Handler struct {
	queue *notify.Queue
}

func NewHandler(queue *notify.Queue) *Handler {
	return &Handler{queue: queue}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Delete("/{id}", h.dismiss)
}

type toastResponse struct {
	ID        uuid.UUID       `json:"id"`
	Message   string          `json:"message"`
	Severity  notify.Severity `json:"severity"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	toasts := h.queue.Active()

	resp := make([]toastResponse, len(toasts))
	for i, t := range toasts {
		resp[i] = toastResponse(t)
	}

	httpio.JSON(w, http.StatusOK, resp)
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if !h.queue.Dismiss(id) {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
