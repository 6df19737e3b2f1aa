// internal/inquiries/handler.go
package inquiries

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gymdesk/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the inquiry endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleListInquiries)
	r.Post("/", h.handleCreateInquiry)
	r.Put("/{id}", h.handleUpdateInquiry)
	r.Delete("/{id}", h.handleDeleteInquiry)
	r.Post("/{id}/follow-ups", h.handleAddFollowUp)
}

func (h *Handler) handleListInquiries(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListInquiries(r.Context(), ParseQuery(r.URL.Query()))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleCreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req Inquiry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inquiry, err := h.service.CreateInquiry(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusCreated, inquiry)
}

func (h *Handler) handleUpdateInquiry(w http.ResponseWriter, r *http.Request) {
	var req Inquiry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inquiry, err := h.service.UpdateInquiry(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, inquiry)
}

func (h *Handler) handleDeleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteInquiry(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddFollowUp(w http.ResponseWriter, r *http.Request) {
	var req FollowUpInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	followUp, err := req.FollowUp()
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	inquiry, err := h.service.AddFollowUp(r.Context(), chi.URLParam(r, "id"), followUp)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, inquiry)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
