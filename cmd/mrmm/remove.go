package main

import (
	"fmt"

	"mrmm/internal/core"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove one mod from the game's live mods directory",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		if err := svc.RemoveLiveMod(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", colorGreen("✓"), args[0])
		return nil
	})
}
