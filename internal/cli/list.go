package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/georgemunganga/printa-storefront/internal/modules/catalog"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog products the way the category page does",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("category", "", "Category id (includes subcategories)")
	listCmd.Flags().StringSlice("brand", nil, "Brand filter, repeatable")
	listCmd.Flags().StringSlice("option", nil, "Secondary option value filter, e.g. \"128 GB\"")
	listCmd.Flags().String("query", "", "Search keyword; switches to the search view")
	listCmd.Flags().Float64("min-price", -1, "Minimum final price")
	listCmd.Flags().Float64("max-price", -1, "Maximum final price")
	listCmd.Flags().Float64("min-rating", -1, "Minimum rating")
	listCmd.Flags().String("sort", "", "Sort: price_asc, price_desc")
	listCmd.Flags().Int("page", 1, "Page number")
	listCmd.Flags().String("format", "table", "Output format: table, json")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	svc := catalog.NewService(c, nil)

	flags := cmd.Flags()
	q := catalog.ListQuery{}
	q.Category, _ = flags.GetString("category")
	q.Brands, _ = flags.GetStringSlice("brand")
	q.Options, _ = flags.GetStringSlice("option")
	q.Query, _ = flags.GetString("query")
	q.Page, _ = flags.GetInt("page")
	sort, _ := flags.GetString("sort")
	q.Sort = catalog.ParseSortOrder(sort)
	for name, dst := range map[string]**float64{
		"min-price":  &q.MinPrice,
		"max-price":  &q.MaxPrice,
		"min-rating": &q.MinRating,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			*dst = &v
		}
	}

	var page *catalog.Page
	if strings.TrimSpace(q.Query) != "" {
		page, err = svc.Search(cmd.Context(), q)
	} else {
		page, err = svc.ListCategory(cmd.Context(), q)
	}
	if err != nil {
		return err
	}

	format, _ := flags.GetString("format")
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	default:
		printProductsTable(out, page.Items)
		fmt.Fprintf(out, "\nPage %d, %d of %d products\n", q.Page, len(page.Items), page.Total)
		return nil
	}
}

// printProductsTable prints products in a card layout, one block per product.
func printProductsTable(w io.Writer, products []catalog.Product) {
	for i, p := range products {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, " %d. %s (#%d)\n", i+1, p.Name, p.ID)

		price := catalog.ComputePriceInfo(p).Display()
		line := "    Price: " + price.Final
		if price.Original != "" {
			line += fmt.Sprintf("  (was %s, %s)", price.Original, price.Discount)
		}
		line += "  |  Brand: " + p.Brand
		fmt.Fprintln(w, line)

		var variant []string
		if p.Color != nil {
			variant = append(variant, "Color: "+p.Color.Name)
		}
		if p.AdditionalOption != nil {
			label := p.AdditionalOptionType
			if label == "" {
				label = "Option"
			}
			variant = append(variant, label+": "+p.AdditionalOption.Name)
		}
		if len(variant) > 0 {
			fmt.Fprintf(w, "    %s\n", strings.Join(variant, "  |  "))
		}
		if len(p.Tags) > 0 {
			fmt.Fprintf(w, "    [%s]\n", strings.Join(p.Tags, "] ["))
		}
		fmt.Fprintf(w, "    Rating: %.1f (%d reviews)  |  Stock: %d\n", p.Rating, p.ReviewCount, p.Stock)
	}
}
