package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and report integrity problems",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("catalog is invalid:\n%w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d products, %d variant families, %d top-level categories (checksum %s)\n",
		c.Len(), len(c.Families()), len(c.Categories()), c.Checksum())
	return nil
}
