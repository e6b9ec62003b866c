package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/georgemunganga/printa-storefront/internal/core/errx"
	logx "github.com/georgemunganga/printa-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/search", h.search)
		r.Get("/favorites", h.favorites)
		r.Get("/products/{id}", h.getProduct)
		r.Get("/products/{id}/variants", h.variants)
		r.Get("/products/{id}/resolve", h.resolveVariant)
		r.Get("/categories", h.categories)
		r.Get("/facets", h.facets)
	})
}

// pageResponse is the list payload: the page plus the paging inputs the
// client needs to render pagination controls.
type pageResponse struct {
	Items    []Product `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.service.ListCategory(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, pageResponse{page.Items, page.Total, q.Page, CategoryPageSize})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.service.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, pageResponse{page.Items, page.Total, q.Page, SearchPageSize})
}

func (h *Handler) favorites(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	ids, err := parseIDs(values.Get("ids"))
	if err != nil {
		writeError(w, err)
		return
	}
	pageNum, err := parsePage(values.Get("page"))
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.service.Favorites(r.Context(), ids, pageNum)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, pageResponse{page.Items, page.Total, pageNum, FavoritesPageSize})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	detail, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, detail)
}

func (h *Handler) variants(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	values := r.URL.Query()
	var colorID, optionID *string
	if values.Has("color") {
		v := values.Get("color")
		colorID = &v
	}
	if values.Has("option") {
		v := values.Get("option")
		optionID = &v
	}
	sel, err := h.service.Variants(r.Context(), id, colorID, optionID)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, sel)
}

// resolveVariant answers 200 with a null product when the combination has no
// SKU; the storefront stays on the current product in that case.
func (h *Handler) resolveVariant(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	values := r.URL.Query()
	p, err := h.service.ResolveVariant(r.Context(), id, values.Get("color"), values.Get("option"))
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"available": p != nil,
		"product":   p,
	})
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, cats)
}

func (h *Handler) facets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.service.Facets(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, facets)
}

func productID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errx.BadRequest(fmt.Errorf("invalid product id %q", raw))
	}
	return id, nil
}

// parseListQuery reads list filters. Multi-valued filters accept repeated
// parameters and comma-separated values.
func parseListQuery(values url.Values) (ListQuery, error) {
	q := ListQuery{
		Category:   strings.TrimSpace(values.Get("category")),
		Brands:     multi(values, "brand"),
		Options:    multi(values, "option"),
		OptionType: strings.TrimSpace(values.Get("option_type")),
		Query:      strings.TrimSpace(values.Get("q")),
		Sort:       ParseSortOrder(values.Get("sort")),
	}
	var err error
	if q.Page, err = parsePage(values.Get("page")); err != nil {
		return q, err
	}
	for name, dst := range map[string]**float64{
		"min_price":  &q.MinPrice,
		"max_price":  &q.MaxPrice,
		"min_rating": &q.MinRating,
	} {
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, errx.BadRequest(fmt.Errorf("invalid %s %q", name, raw))
		}
		*dst = &v
	}
	return q, nil
}

// parsePage defaults to 1. Out-of-range pages are passed through and come
// back as an empty page.
func parsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errx.BadRequest(fmt.Errorf("invalid page %q", raw))
	}
	return n, nil
}

func parseIDs(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, errx.BadRequest(fmt.Errorf("invalid product id %q", part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func multi(values url.Values, key string) []string {
	var out []string
	for _, v := range values[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	status, msg := errx.Status(err)
	if status >= http.StatusInternalServerError {
		logx.Error().Err(err).Msg("catalog request failed")
	}
	respond(w, status, map[string]string{"error": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
