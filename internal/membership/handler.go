// internal/membership/handler.go
package membership

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

// Routes mounts the member endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleListMembers)
	r.Post("/", h.handleCreateMember)
	r.Post("/preview", h.handlePreviewDraft)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.handleGetMember)
		r.Put("/", h.handleUpdateMember)
		r.Delete("/", h.handleDeleteMember)
		r.Post("/preview", h.handlePreviewEdit)
	})
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListMembers(r.Context(), ParseFilter(r.URL.Query()))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req Member
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	member, err := h.service.CreateMember(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.GetMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var req Member
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	member, err := h.service.UpdateMember(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePreviewEdit(w http.ResponseWriter, r *http.Request) {
	var edit Edit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	preview, err := h.service.PreviewEdit(r.Context(), chi.URLParam(r, "id"), edit)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

func (h *Handler) handlePreviewDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Member Member `json:"member"`
		Edit   Edit   `json:"edit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.service.PreviewDraft(r.Context(), req.Member, req.Edit))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
