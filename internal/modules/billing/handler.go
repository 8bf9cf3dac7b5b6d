package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes billing HTTP endpoints.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bills", func(r chi.Router) {
		r.Post("/", h.submitBill) // POST /bills
		r.Get("/", h.listBills)   // GET  /bills?vendor_id=...
		r.Get("/{id}", h.getBill) // GET  /bills/{id}?vendor_id=...
	})
}

func (h *Handler) submitBill(w http.ResponseWriter, r *http.Request) {
	var req BillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	receipt, err := h.service.SubmitBill(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond(w, http.StatusOK, receipt)
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	vendorID, err := strconv.ParseInt(r.URL.Query().Get("vendor_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "vendor_id is required"})
		return
	}
	bills, err := h.service.ListBills(r.Context(), vendorID)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond(w, http.StatusOK, bills)
}

func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid bill id"})
		return
	}
	vendorID, err := strconv.ParseInt(r.URL.Query().Get("vendor_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "vendor_id is required"})
		return
	}
	bill, err := h.service.GetBill(r.Context(), vendorID, id)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond(w, http.StatusOK, bill)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrBillNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrInvalidRequest):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.log.Error("billing request failed", zap.Error(err))
		respond(w, http.StatusInternalServerError, map[string]string{"error": "could not record bill"})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
