package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/georgemunganga/printa-storefront/internal/modules/catalog"
	"github.com/spf13/cobra"
)

var variantsCmd = &cobra.Command{
	Use:   "variants [product-id]",
	Short: "Show the colour and option grid of a product's variant family",
	Args:  cobra.ExactArgs(1),
	RunE:  runVariants,
}

func init() {
	variantsCmd.Flags().String("color", "", "Colour id to resolve")
	variantsCmd.Flags().String("option", "", "Option id to resolve")
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	c, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	svc := catalog.NewService(c, nil)
	out := cmd.OutOrStdout()

	detail, err := svc.GetProduct(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (#%d) in %s\n", detail.Product.Name, id, detail.FamilyID)
	fam, _ := c.Family(id)
	for _, member := range fam.ProductIDs {
		p, _ := c.Product(member)
		fmt.Fprintf(out, "  #%-5d colour=%-12s option=%-10s %s\n",
			p.ID, p.ColorID(), p.OptionID(), catalog.ComputePriceInfo(p).Display().Final)
	}
	fmt.Fprintf(out, "Colours with this option: %s\n", names(detail.Colors))
	fmt.Fprintf(out, "Options in this colour:   %s\n", names(detail.Options))

	flags := cmd.Flags()
	if flags.Changed("color") || flags.Changed("option") {
		colorID, optionID := detail.Product.ColorID(), detail.Product.OptionID()
		if flags.Changed("color") {
			colorID, _ = flags.GetString("color")
		}
		if flags.Changed("option") {
			optionID, _ = flags.GetString("option")
		}
		p, err := svc.ResolveVariant(cmd.Context(), id, colorID, optionID)
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Fprintf(out, "No product for colour %q and option %q\n", colorID, optionID)
			return nil
		}
		fmt.Fprintf(out, "Resolved: %s (#%d)\n", p.Name, p.ID)
	}
	return nil
}

func names(options []catalog.VariantOption) string {
	if len(options) == 0 {
		return "-"
	}
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Name
	}
	return strings.Join(out, ", ")
}
