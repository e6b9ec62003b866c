package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	NewHandler(newTestService(t, nil)).RegisterRoutes(r)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHandlerListProducts(t *testing.T) {
	h := newTestRouter(t)
	rec := get(t, h, "/api/v1/catalog/products?category=electronics&sort=price_asc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	body := decode[pageResponse](t, rec)
	if diff := cmp.Diff([]int{106, 107}, ids(body.Items)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if body.Total != 2 || body.Page != 1 || body.PageSize != CategoryPageSize {
		t.Errorf("paging = %+v", body)
	}
}

func TestHandlerListProductsFilters(t *testing.T) {
	h := newTestRouter(t)
	rec := get(t, h, "/api/v1/catalog/products?brand=lumen,airbook&min_price=200")
	body := decode[pageResponse](t, rec)
	if diff := cmp.Diff([]int{107}, ids(body.Items)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	rec = get(t, h, "/api/v1/catalog/products?page=7")
	body = decode[pageResponse](t, rec)
	if rec.Code != http.StatusOK || len(body.Items) != 0 || body.Total != 9 {
		t.Errorf("out of range page: status %d body %+v", rec.Code, body)
	}
}

func TestHandlerHugePageIsEmpty(t *testing.T) {
	h := newTestRouter(t)
	for _, target := range []string{
		"/api/v1/catalog/products?page=9223372036854775807",
		"/api/v1/catalog/search?q=phone&page=9223372036854775807",
		"/api/v1/catalog/favorites?ids=1,2&page=9223372036854775807",
	} {
		rec := get(t, h, target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", target, rec.Code)
			continue
		}
		body := decode[pageResponse](t, rec)
		if body.Items == nil || len(body.Items) != 0 || body.Total == 0 {
			t.Errorf("%s: body = %+v", target, body)
		}
	}
}

func TestHandlerBadInput(t *testing.T) {
	h := newTestRouter(t)
	for _, target := range []string{
		"/api/v1/catalog/products?min_price=cheap",
		"/api/v1/catalog/products?page=two",
		"/api/v1/catalog/products/abc",
		"/api/v1/catalog/favorites?ids=1,x",
		"/api/v1/catalog/search?q=",
	} {
		if rec := get(t, h, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestHandlerGetProduct(t *testing.T) {
	h := newTestRouter(t)
	rec := get(t, h, "/api/v1/catalog/products/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	detail := decode[ProductDetail](t, rec)
	if detail.Product.ID != 2 || detail.FamilyID != "family-1" {
		t.Errorf("detail = %+v", detail)
	}

	if rec := get(t, h, "/api/v1/catalog/products/404"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown product: status = %d, want 404", rec.Code)
	}
}

func TestHandlerResolveVariant(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/api/v1/catalog/products/1/resolve?color=blue&option=256gb")
	found := decode[struct {
		Available bool     `json:"available"`
		Product   *Product `json:"product"`
	}](t, rec)
	if !found.Available || found.Product == nil || found.Product.ID != 4 {
		t.Errorf("resolve blue/256gb = %+v", found)
	}

	rec = get(t, h, "/api/v1/catalog/products/1/resolve?color=black&option=256gb")
	if rec.Code != http.StatusOK {
		t.Fatalf("unavailable combination: status = %d", rec.Code)
	}
	missing := decode[map[string]any](t, rec)
	if missing["available"] != false || missing["product"] != nil {
		t.Errorf("unavailable combination = %v", missing)
	}
}

func TestHandlerVariants(t *testing.T) {
	h := newTestRouter(t)
	rec := get(t, h, "/api/v1/catalog/products/1/variants?color=blue")
	sel := decode[VariantSelection](t, rec)
	if sel.ColorID != "blue" || sel.OptionID != "64gb" {
		t.Errorf("selection = %q/%q", sel.ColorID, sel.OptionID)
	}
	if diff := cmp.Diff([]VariantOption{gb64, gb256}, sel.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerFavoritesAndSearch(t *testing.T) {
	h := newTestRouter(t)

	fav := decode[pageResponse](t, get(t, h, "/api/v1/catalog/favorites?ids=108,1"))
	if diff := cmp.Diff([]int{1, 108}, ids(fav.Items)); diff != "" {
		t.Errorf("favorites mismatch (-want +got):\n%s", diff)
	}
	if fav.PageSize != FavoritesPageSize {
		t.Errorf("PageSize = %d", fav.PageSize)
	}

	found := decode[pageResponse](t, get(t, h, "/api/v1/catalog/search?q=LAMP"))
	if diff := cmp.Diff([]int{108}, ids(found.Items)); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerCategoriesAndFacets(t *testing.T) {
	h := newTestRouter(t)

	cats := decode[[]Category](t, get(t, h, "/api/v1/catalog/categories"))
	if diff := cmp.Diff(testCategories(), cats); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	facets := decode[Facets](t, get(t, h, "/api/v1/catalog/facets?category=office"))
	if facets.Total != 1 || len(facets.Brands) != 1 || facets.Brands[0].Value != "Lumen" {
		t.Errorf("facets = %+v", facets)
	}
}
