package main

import (
	"errors"
	"fmt"

	"mrmm/internal/core"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <file>...",
	Short: "Stage mod files and archives, then copy them into the game",
	Long: `Stage one or more .pak files or archives (.zip, .7z, .rar) and apply
them to the game's live mods directory.

Mods already live under the same name are left untouched. Files that
cannot be staged are reported and skipped; the rest are still applied.

Examples:
  mrmm apply ~/Downloads/SkinPack.zip
  mrmm apply Hero_P.pak Other_9999999_P.pak`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		out := cmd.OutOrStdout()

		var errs []error
		for _, path := range args {
			res, err := svc.StageFile(path)
			if err != nil {
				fmt.Fprintf(out, "  %s %s: %v\n", colorRed("✗"), path, err)
				errs = append(errs, err)
				continue
			}
			if len(res.Added) == 0 && len(res.Duplicates) == 0 {
				fmt.Fprintf(out, "  %s %s: no .pak files found\n", colorYellow("!"), path)
			}
			for _, name := range res.Duplicates {
				fmt.Fprintf(out, "  %s %s already staged\n", colorYellow("!"), name)
			}
		}

		if len(svc.Staged()) == 0 {
			if len(errs) > 0 {
				return errors.Join(errs...)
			}
			fmt.Fprintln(out, "Nothing to apply.")
			return nil
		}

		res, err := svc.ApplyStaging()
		if res != nil {
			for _, name := range res.Applied {
				fmt.Fprintf(out, "  %s %s\n", colorGreen("✓"), name)
			}
			for _, name := range res.AlreadyActive {
				fmt.Fprintf(out, "  %s %s already active\n", colorYellow("="), name)
			}
			for _, name := range res.Failed {
				fmt.Fprintf(out, "  %s %s\n", colorRed("✗"), name)
			}
			fmt.Fprintf(out, "\nApplied %d mod(s)", len(res.Applied))
			if n := len(res.AlreadyActive); n > 0 {
				fmt.Fprintf(out, ", %d already active", n)
			}
			if n := len(res.Failed); n > 0 {
				fmt.Fprintf(out, ", %d failed", n)
			}
			fmt.Fprintln(out)
		}
		if err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})
}
