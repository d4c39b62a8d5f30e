package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/http/httpio"
	"github.com/MrJamesThe3rd/kasir/internal/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type userResponse struct {
	ID     uuid.UUID   `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   user.Role   `json:"role"`
	Status user.Status `json:"status"`
	Avatar string      `json:"avatar"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status, Avatar: u.Avatar}
}

type userRequest struct {
	Name   string `json:"name" validate:"required,max=120"`
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"required"`
	Status string `json:"status"`
}

func (req userRequest) params() (user.Params, error) {
	role, err := user.ParseRole(req.Role)
	if err != nil {
		return user.Params{}, err
	}

	status := user.StatusActive
	if req.Status != "" {
		if status, err = user.ParseStatus(req.Status); err != nil {
			return user.Params{}, err
		}
	}

	return user.Params{Name: req.Name, Email: req.Email, Role: role, Status: status}, nil
}

func decodeParams(r *http.Request) (user.Params, error) {
	var req userRequest
	if err := httpio.DecodeJSON(r, &req); err != nil {
		return user.Params{}, err
	}

	return req.params()
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, user.ErrInvalidUser):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toResponse(u)
	}

	httpio.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	httpio.JSON(w, http.StatusCreated, toResponse(u))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	httpio.JSON(w, http.StatusOK, toResponse(u))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	params, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	httpio.JSON(w, http.StatusOK, toResponse(u))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
