package cli

import (
	"github.com/georgemunganga/printa-storefront/internal/mcp"
	"github.com/georgemunganga/printa-storefront/internal/modules/catalog"
	"github.com/spf13/cobra"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Serve the catalog as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE:  runServeMCP,
}

func init() {
	rootCmd.AddCommand(serveMCPCmd)
}

func runServeMCP(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	return mcp.Serve(catalog.NewService(c, nil))
}
