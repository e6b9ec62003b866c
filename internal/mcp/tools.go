package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/georgemunganga/printa-storefront/internal/modules/catalog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type tools struct{ catalog catalog.Service }

func registerTools(s *server.MCPServer, svc catalog.Service) {
	t := &tools{catalog: svc}

	// search_products
	searchTool := mcp.NewTool("search_products",
		mcp.WithDescription("Search the storefront catalog by keyword with optional filters"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Keyword matched against product name, brand and tags"),
		),
		mcp.WithString("category",
			mcp.Description("Category id; includes its subcategories"),
		),
		mcp.WithString("brand",
			mcp.Description("Comma-separated brand names"),
		),
		mcp.WithString("sort",
			mcp.Description("price_asc or price_desc"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number (default: 1)"),
		),
	)
	s.AddTool(searchTool, t.handleSearchProducts)

	// product_detail
	detailTool := mcp.NewTool("product_detail",
		mcp.WithDescription("Get a product with its price and available colours and options"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Product id"),
		),
	)
	s.AddTool(detailTool, t.handleProductDetail)

	// resolve_variant
	resolveTool := mcp.NewTool("resolve_variant",
		mcp.WithDescription("Find the product in a variant family matching a colour and option"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Any product id in the family"),
		),
		mcp.WithString("color",
			mcp.Required(),
			mcp.Description("Colour id"),
		),
		mcp.WithString("option",
			mcp.Description("Secondary option id; omit for products without one"),
		),
	)
	s.AddTool(resolveTool, t.handleResolveVariant)
}

func (t *tools) handleSearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	q := catalog.ListQuery{
		Query:    query,
		Category: request.GetString("category", ""),
		Sort:     catalog.ParseSortOrder(request.GetString("sort", "")),
		Page:     request.GetInt("page", 1),
	}
	if brands := request.GetString("brand", ""); brands != "" {
		q.Brands = strings.Split(brands, ",")
	}

	page, err := t.catalog.Search(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
	}
	return jsonResult(page)
}

func (t *tools) handleProductDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("id", 0)
	detail, err := t.catalog.GetProduct(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("detail error: %v", err)), nil
	}
	return jsonResult(detail)
}

func (t *tools) handleResolveVariant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("id", 0)
	p, err := t.catalog.ResolveVariant(ctx, id,
		request.GetString("color", ""), request.GetString("option", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolve error: %v", err)), nil
	}
	if p == nil {
		return mcp.NewToolResultText("no product matches that colour and option"), nil
	}
	return jsonResult(p)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
