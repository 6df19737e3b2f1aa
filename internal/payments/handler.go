// internal/payments/handler.go
package payments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gymdesk/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the payment endpoints on r. The router is expected to carry
// the member ID as the "id" URL parameter.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleHistory)
	r.Post("/", h.handleRecordPayment)
	r.Put("/{index}", h.handleCorrectPayment)
	r.Get("/{index}/payslip", h.handlePayslip)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleCorrectPayment(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid payment index", http.StatusBadRequest)
		return
	}

	var req PaymentInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.CorrectPayment(r.Context(), chi.URLParam(r, "id"), index, req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	index := LatestPayment
	if raw := chi.URLParam(r, "index"); raw != "latest" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid payment index", http.StatusBadRequest)
			return
		}
		index = n
	}

	slip, err := h.service.Payslip(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	switch r.URL.Query().Get("format") {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(slip.Receipt.HTML))
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(slip.Receipt.Markdown))
	default:
		writeJSON(w, http.StatusOK, slip)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
