package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/georgemunganga/printa-storefront/internal/config"
	"github.com/georgemunganga/printa-storefront/internal/modules/catalog"
	logx "github.com/georgemunganga/printa-storefront/pkg/logger"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "catalogctl",
	Short:         "Inspect and serve the Printa storefront catalog",
	Long:          "catalogctl validates catalog data, browses it the way the storefront does and exposes it as MCP tools.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("source", "", "Catalog source: file or postgres (default from CATALOG_SOURCE)")
	rootCmd.PersistentFlags().String("file", "", "Catalog JSON file (default from CATALOG_FILE)")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres URL (default from DATABASE_URL)")
}

func initConfig() {
	loaded, err := config.Load()
	if err != nil {
		// Flags may still supply what the environment is missing.
		loaded = &config.Config{CatalogSource: config.SourceFile, CatalogFile: "data/catalog.json"}
	}
	cfg = loaded

	if v, _ := rootCmd.PersistentFlags().GetString("source"); v != "" {
		cfg.CatalogSource = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("file"); v != "" {
		cfg.CatalogFile = v
		if cfg.CatalogSource == "" {
			cfg.CatalogSource = config.SourceFile
		}
	}
	if v, _ := rootCmd.PersistentFlags().GetString("database-url"); v != "" {
		cfg.DatabaseURL = v
	}

	// Logs go to stderr so command output stays pipeable.
	logx.Init(logx.Options{Environment: cfg.Environment(), Output: os.Stderr})
}

// loadCatalog opens the configured source and loads the catalog snapshot.
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return catalog.LoadCatalog(ctx, catalog.NewPostgresRepository(db))
	default:
		return catalog.LoadCatalog(ctx, catalog.NewFileRepository(cfg.CatalogFile))
	}
}
