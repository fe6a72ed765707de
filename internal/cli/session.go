package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Short:   "Drive a live-edit session",
	GroupID: "live-edit",
}

var sessionDate string

var sessionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Fork a live-edit session from the current plan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var s sessionView
		if err := newClient().post("/api/v1/live-sessions", map[string]any{"date": sessionDate}, &s); err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(s)
		}
		PrintSuccess(fmt.Sprintf("session %s at version %d", s.SessionID, s.Version))
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <sessionId>",
	Short: "Show the session state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var s sessionView
		if err := newClient().get("/api/v1/live-sessions/"+args[0], &s); err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(s)
		}
		printSession(s)
		return nil
	},
}

var (
	sessionRestQty float64
	sessionVersion int
)

var sessionRestQtyCmd = &cobra.Command{
	Use:   "rest-qty <sessionId> <orderId>",
	Short: "Record the remaining quantity for a position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"restQty":         sessionRestQty,
			"expectedVersion": sessionVersion,
		}
		var s sessionView
		err := newClient().put("/api/v1/live-sessions/"+args[0]+"/positions/"+args[1]+"/rest-qty", body, &s)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(s)
		}
		printSession(s)
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "drop <sessionId> <orderId>",
	Short: "Remove a position from the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"expectedVersion": sessionVersion}
		var s sessionView
		err := newClient().post("/api/v1/live-sessions/"+args[0]+"/positions/"+args[1]+"/delete", body, &s)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(s)
		}
		printSession(s)
		return nil
	},
}

var sessionUndoCmd = &cobra.Command{
	Use:   "undo <sessionId>",
	Short: "Undo the last session mutation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var s sessionView
		if err := newClient().post("/api/v1/live-sessions/"+args[0]+"/undo", nil, &s); err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(s)
		}
		printSession(s)
		return nil
	},
}

var sessionPublishCmd = &cobra.Command{
	Use:   "publish <sessionId>",
	Short: "Publish the session back to the main plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"expectedVersion": sessionVersion}
		var result struct {
			Published          bool `json:"published"`
			Dirty              bool `json:"dirty"`
			MainPlannerVersion int  `json:"mainPlannerVersion"`
		}
		err := newClient().post("/api/v1/live-sessions/"+args[0]+"/publish", body, &result)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("published; main planner now at version %d", result.MainPlannerVersion))
		return nil
	},
}

func printSession(s sessionView) {
	PrintLabelValue("session", s.SessionID)
	PrintLabelValue("version", fmt.Sprintf("%d", s.Version))
	PrintLabelValue("dirty", fmt.Sprintf("%t", s.Dirty))
	PrintLabelValue("publishable", fmt.Sprintf("%t", s.CanUpdatePlanner))
	for _, line := range s.Lines {
		PrintSection(line.LineID)
		for _, p := range line.Positions {
			PrintInfo(fmt.Sprintf("  %2d. %s-%s  %s  start %.0f rest %.0f  %s",
				p.Position, p.StartAt, p.EndAt, p.OrderID, p.StartQty, p.RestQty, p.MixerID))
		}
	}
	if s.HasConflicts {
		fmt.Println()
		for _, c := range s.Conflicts {
			PrintWarning(fmt.Sprintf("%s: %s overlaps %s (%s-%s)", c.MixerID, c.BlockAID, c.BlockBID, c.OverlapStart, c.OverlapEnd))
		}
	}
}

func init() {
	sessionCreateCmd.Flags().StringVar(&sessionDate, "date", "", "Plan date YYYY-MM-DD (required)")
	_ = sessionCreateCmd.MarkFlagRequired("date")

	for _, cmd := range []*cobra.Command{sessionRestQtyCmd, sessionDeleteCmd, sessionPublishCmd} {
		cmd.Flags().IntVar(&sessionVersion, "expected-version", 0, "Session version the change is based on (required)")
		_ = cmd.MarkFlagRequired("expected-version")
	}
	sessionRestQtyCmd.Flags().Float64Var(&sessionRestQty, "qty", 0, "Remaining quantity in liters (required)")
	_ = sessionRestQtyCmd.MarkFlagRequired("qty")

	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionRestQtyCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	sessionCmd.AddCommand(sessionUndoCmd)
	sessionCmd.AddCommand(sessionPublishCmd)
	rootCmd.AddCommand(sessionCmd)
}
