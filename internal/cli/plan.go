package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:     "plan",
	Short:   "Show the current day plan",
	Long:    `Display every production order per fill line plus mixer occupancy.`,
	Args:    cobra.NoArgs,
	GroupID: "planning",
	RunE: func(cmd *cobra.Command, args []string) error {
		var plan planView
		if err := newClient().get("/api/v1/plan", &plan); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(plan)
		}

		if len(plan.Orders) == 0 {
			PrintInfo("No orders planned")
			return nil
		}

		byLine := map[string][]orderView{}
		for _, o := range plan.Orders {
			byLine[o.LineID] = append(byLine[o.LineID], o)
		}
		lineIDs := make([]string, 0, len(byLine))
		for id := range byLine {
			lineIDs = append(lineIDs, id)
		}
		sort.Strings(lineIDs)

		for _, lineID := range lineIDs {
			PrintSection(lineID)
			for _, o := range byLine[lineID] {
				flag := ""
				if o.Locked {
					flag = " [locked]"
				}
				PrintInfo(fmt.Sprintf("  %s-%s  %-24s %7.0f L  %s  %s%s",
					o.StartAt, o.EndAt, o.ProductName, o.VolumeLiters, o.Status, o.MixerID, flag))
				dimColor.Printf("           %s  %s\n", o.OrderID, o.ProductionOrderNumber)
			}
		}

		if len(plan.MixerBlocks) > 0 {
			PrintSection("Mixers")
			for _, b := range plan.MixerBlocks {
				PrintInfo(fmt.Sprintf("  %s  %s-%s  %-13s order %s", b.MixerID, b.StartAt, b.EndAt, b.Kind, b.OrderID))
			}
		}

		if len(plan.ConflictBlockIDs) > 0 {
			fmt.Println()
			PrintWarning(fmt.Sprintf("conflicting blocks: %s", strings.Join(plan.ConflictBlockIDs, ", ")))
		}
		return nil
	},
}

var conflictsCmd = &cobra.Command{
	Use:     "conflicts",
	Short:   "List mixer blocks currently in conflict",
	Args:    cobra.NoArgs,
	GroupID: "planning",
	RunE: func(cmd *cobra.Command, args []string) error {
		var plan planView
		if err := newClient().get("/api/v1/plan", &plan); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(plan.ConflictBlockIDs)
		}

		if len(plan.ConflictBlockIDs) == 0 {
			PrintSuccess("No conflicts")
			return nil
		}
		for _, id := range plan.ConflictBlockIDs {
			PrintWarning(id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(conflictsCmd)
}
