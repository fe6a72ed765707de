package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	orderPON    string
	orderProd   string
	orderVolume float64
	orderBottle string
	orderLine   string
	orderStart  string
)

var orderCmd = &cobra.Command{
	Use:     "order",
	Short:   "Manage production orders",
	GroupID: "planning",
}

var orderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a production order on a fill line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"productionOrderNumber": orderPON,
			"productId":             orderProd,
			"volumeLiters":          orderVolume,
			"bottleSize":            orderBottle,
			"lineId":                orderLine,
			"startAt":               orderStart,
		}
		var order orderView
		if err := newClient().post("/api/v1/orders", body, &order); err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(order)
		}
		PrintSuccess(fmt.Sprintf("created %s on %s (%s-%s)", order.OrderID, order.LineID, order.StartAt, order.EndAt))
		return nil
	},
}

var orderRmCmd = &cobra.Command{
	Use:   "rm <orderId>",
	Short: "Delete a production order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().delete("/api/v1/orders/" + args[0]); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("deleted %s", args[0]))
		return nil
	},
}

var orderMixer string

var orderAssignCmd = &cobra.Command{
	Use:   "assign <orderId>",
	Short: "Assign an order to a mixer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var order orderView
		err := newClient().post("/api/v1/orders/"+args[0]+"/assign", map[string]any{"mixerId": orderMixer}, &order)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(order)
		}
		PrintSuccess(fmt.Sprintf("assigned %s to %s", order.OrderID, order.MixerID))
		return nil
	},
}

var orderUnassignCmd = &cobra.Command{
	Use:   "unassign <orderId>",
	Short: "Release an order from its mixer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var order orderView
		if err := newClient().post("/api/v1/orders/"+args[0]+"/unassign", nil, &order); err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(order)
		}
		PrintSuccess(fmt.Sprintf("unassigned %s", order.OrderID))
		return nil
	},
}

var orderLockCmd = &cobra.Command{
	Use:   "lock <orderId>",
	Short: "Lock an order against changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var order orderView
		if err := newClient().post("/api/v1/orders/"+args[0]+"/lock", nil, &order); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("locked %s", order.OrderID))
		return nil
	},
}

var orderUnlockCmd = &cobra.Command{
	Use:   "unlock <orderId>",
	Short: "Unlock an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var order orderView
		if err := newClient().post("/api/v1/orders/"+args[0]+"/unlock", nil, &order); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("unlocked %s", order.OrderID))
		return nil
	},
}

var reorderCmd = &cobra.Command{
	Use:     "reorder <lineId> <movedOrderId> <targetOrderId>",
	Short:   "Move an order within its line and repack the sequence",
	Args:    cobra.ExactArgs(3),
	GroupID: "planning",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"movedOrderId":  args[1],
			"targetOrderId": args[2],
		}
		var plan planView
		if err := newClient().post("/api/v1/lines/"+args[0]+"/reorder", body, &plan); err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(plan)
		}
		PrintSuccess(fmt.Sprintf("reordered %s", args[0]))
		return nil
	},
}

func init() {
	orderCreateCmd.Flags().StringVar(&orderPON, "pon", "", "Production order number (required)")
	orderCreateCmd.Flags().StringVar(&orderProd, "product", "", "Product id (required)")
	orderCreateCmd.Flags().Float64Var(&orderVolume, "volume", 0, "Volume in liters (required)")
	orderCreateCmd.Flags().StringVar(&orderBottle, "bottle", "", "Bottle size, e.g. 0.5L (required)")
	orderCreateCmd.Flags().StringVar(&orderLine, "line", "", "Fill line id, e.g. L1 (required)")
	orderCreateCmd.Flags().StringVar(&orderStart, "start", "", "Fill start time HH:MM (required)")
	for _, f := range []string{"pon", "product", "volume", "bottle", "line", "start"} {
		_ = orderCreateCmd.MarkFlagRequired(f)
	}

	orderAssignCmd.Flags().StringVar(&orderMixer, "mixer", "", "Mixer id, e.g. M3 (required)")
	_ = orderAssignCmd.MarkFlagRequired("mixer")

	orderCmd.AddCommand(orderCreateCmd)
	orderCmd.AddCommand(orderRmCmd)
	orderCmd.AddCommand(orderAssignCmd)
	orderCmd.AddCommand(orderUnassignCmd)
	orderCmd.AddCommand(orderLockCmd)
	orderCmd.AddCommand(orderUnlockCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(reorderCmd)
}
