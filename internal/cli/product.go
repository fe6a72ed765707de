package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	productName     string
	productNumber   string
	productDuration int
)

var productCmd = &cobra.Command{
	Use:     "product",
	Short:   "Manage product master data",
	GroupID: "master-data",
}

var productLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var list []productView
		if err := newClient().get("/api/v1/products", &list); err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(list)
		}
		if len(list) == 0 {
			PrintInfo("No products found")
			return nil
		}
		for _, p := range list {
			PrintInfo(fmt.Sprintf("  %-24s %-12s %3d min  %s", p.Name, p.ArticleNumber, p.ManufacturingDurationMin, p.ProductID))
		}
		return nil
	},
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"name":                     productName,
			"articleNumber":            productNumber,
			"manufacturingDurationMin": productDuration,
		}
		var p productView
		if err := newClient().post("/api/v1/products", body, &p); err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(p)
		}
		PrintSuccess(fmt.Sprintf("created %s (%s)", p.Name, p.ProductID))
		return nil
	},
}

var productRmCmd = &cobra.Command{
	Use:   "rm <productId>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().delete("/api/v1/products/" + args[0]); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("deleted %s", args[0]))
		return nil
	},
}

var ratesCmd = &cobra.Command{
	Use:     "rates",
	Short:   "Show fill rates per line and bottle size",
	Args:    cobra.NoArgs,
	GroupID: "master-data",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rates map[string]map[string]float64
		if err := newClient().get("/api/v1/line-rates", &rates); err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(rates)
		}
		for _, lineID := range []string{"L1", "L2", "L3", "L4"} {
			perBottle, ok := rates[lineID]
			if !ok {
				continue
			}
			PrintSection(lineID)
			for _, bottle := range []string{"0.33L", "0.5L", "1.0L", "1.5L"} {
				if rate, ok := perBottle[bottle]; ok {
					PrintLabelValue(bottle, fmt.Sprintf("%.0f L/min", rate))
				}
			}
		}
		return nil
	},
}

func init() {
	productAddCmd.Flags().StringVar(&productName, "name", "", "Product name (required)")
	productAddCmd.Flags().StringVar(&productNumber, "number", "", "Article number (required)")
	productAddCmd.Flags().IntVar(&productDuration, "duration", 0, "Manufacturing duration in minutes (required)")
	for _, f := range []string{"name", "number", "duration"} {
		_ = productAddCmd.MarkFlagRequired(f)
	}

	productCmd.AddCommand(productLsCmd)
	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productRmCmd)
	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(ratesCmd)
}
