// internal/expenses/handler.go
package expenses

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gymdesk/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the expense endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleListExpenses)
	r.Post("/", h.handleCreateExpense)
	r.Put("/{id}", h.handleUpdateExpense)
	r.Delete("/{id}", h.handleDeleteExpense)
}

func (h *Handler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query(), time.Now())
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	page, err := h.service.ListExpenses(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expense, err := h.service.CreateExpense(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (h *Handler) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expense, err := h.service.UpdateExpense(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (h *Handler) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
