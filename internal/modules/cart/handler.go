package cart

import (
	"encoding/json"
	"net/http"

	"github.com/georgemunganga/printa-storefront/internal/core/errx"
	"github.com/go-chi/chi/v5"
)

// Handler exposes cart HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Post("/quote", h.quote)
	})
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	q, err := h.service.Quote(r.Context(), req)
	if err != nil {
		status, msg := errx.Status(err)
		respond(w, status, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusOK, q)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
