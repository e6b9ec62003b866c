package mcp

import (
	"github.com/georgemunganga/printa-storefront/internal/modules/catalog"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "printa-storefront"
	serverVersion = "1.0.0"
)

// NewServer builds an MCP server exposing the catalog tools.
func NewServer(svc catalog.Service) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(true))
	registerTools(s, svc)
	return s
}

// Serve runs the catalog tools over stdio until stdin closes.
func Serve(svc catalog.Service) error {
	return server.ServeStdio(NewServer(svc))
}
