package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	apiBase    string
)

// rootCmd is the root command for planctl.
var rootCmd = &cobra.Command{
	Use:     "planctl",
	Version: "dev",
	Short:   "Bottling plant production planner CLI",
	Long: `planctl talks to the bottling planner API.

It inspects the day plan, manages production orders and mixer assignments,
maintains product master data and drives live-edit sessions from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "Planner API base URL (default $PLANCTL_API or http://localhost:8080)")

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "planning",
		Title: "Planning:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "live-edit",
		Title: "Live Edit:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "master-data",
		Title: "Master Data:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the planctl CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Root().Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
