package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/georgemunganga/printa-storefront/internal/modules/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

func testTools(t *testing.T) *tools {
	t.Helper()
	red := &catalog.VariantOption{ID: "red", Name: "Red"}
	blue := &catalog.VariantOption{ID: "blue", Name: "Blue"}
	products := []catalog.Product{
		{ID: 1, Name: "Canvas Tee", Brand: "Acme", BasePrice: 20, Color: red, RelatedProductIDs: []int{2}, Stock: 4},
		{ID: 2, Name: "Canvas Tee", Brand: "Acme", BasePrice: 20, Color: blue, RelatedProductIDs: []int{1}, Stock: 4},
		{ID: 3, Name: "Canvas Tote", Brand: "Bagworks", BasePrice: 12, Stock: 9},
	}
	c, _, err := catalog.NewCatalog(products, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return &tools{catalog: catalog.NewService(c, nil)}
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content %T", res.Content[0])
	return ""
}

func TestSearchProductsTool(t *testing.T) {
	tl := testTools(t)
	res, err := tl.handleSearchProducts(context.Background(), call(map[string]any{"query": "canvas", "brand": "bagworks"}))
	if err != nil || res.IsError {
		t.Fatalf("search failed: %v %s", err, text(t, res))
	}
	var page catalog.Page
	if err := json.Unmarshal([]byte(text(t, res)), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].ID != 3 {
		t.Errorf("page = %+v", page)
	}

	res, _ = tl.handleSearchProducts(context.Background(), call(map[string]any{"query": " "}))
	if !res.IsError {
		t.Error("blank query should be a tool error")
	}
}

func TestProductDetailTool(t *testing.T) {
	tl := testTools(t)
	res, _ := tl.handleProductDetail(context.Background(), call(map[string]any{"id": float64(2)}))
	if res.IsError || !strings.Contains(text(t, res), `"family_id": "family-1"`) {
		t.Errorf("detail = %s", text(t, res))
	}

	res, _ = tl.handleProductDetail(context.Background(), call(map[string]any{"id": float64(77)}))
	if !res.IsError {
		t.Error("unknown product should be a tool error")
	}
}

func TestResolveVariantTool(t *testing.T) {
	tl := testTools(t)
	res, _ := tl.handleResolveVariant(context.Background(), call(map[string]any{"id": float64(1), "color": "blue"}))
	var p catalog.Product
	if err := json.Unmarshal([]byte(text(t, res)), &p); err != nil || p.ID != 2 {
		t.Errorf("resolve = %s", text(t, res))
	}

	res, _ = tl.handleResolveVariant(context.Background(), call(map[string]any{"id": float64(1), "color": "green"}))
	if res.IsError || !strings.Contains(text(t, res), "no product matches") {
		t.Errorf("missing combination = %s", text(t, res))
	}
}
