package main

import (
	"fmt"

	"mrmm/internal/core"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every mod from the live directory and the current profile",
	Long: `Remove every mod from the game's live mods directory and empty the
current profile, so the game starts unmodded.

Examples:
  mrmm clear
  mrmm clear --yes`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation prompt")

	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		out := cmd.OutOrStdout()

		if !clearYes {
			prompt := fmt.Sprintf("Remove all live mods and empty profile %q?", svc.CurrentProfile())
			if !confirm(cmd, prompt) {
				fmt.Fprintln(out, "Aborted.")
				return ErrCancelled
			}
		}

		report, err := svc.ClearAll()
		if report != nil {
			fmt.Fprintf(out, "Removed %d mod(s)\n", len(report.Removed))
			for _, f := range report.Failures {
				fmt.Fprintf(out, "  %s %v\n", colorRed("✗"), f)
			}
		}
		return err
	})
}
