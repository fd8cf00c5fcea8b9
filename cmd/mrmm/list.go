package main

import (
	"fmt"
	"text/tabwriter"

	"mrmm/internal/core"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List mods in the game's live mods directory",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		out := cmd.OutOrStdout()

		mods, err := svc.LiveMods()
		if err != nil {
			return err
		}
		if len(mods) == 0 {
			fmt.Fprintln(out, "No mods active.")
			return nil
		}

		origins, err := svc.Origins()
		if err != nil {
			return fmt.Errorf("reading mod origins: %w", err)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MOD\tORIGIN")
		for _, name := range mods {
			origin := "-"
			if o, ok := origins[name]; ok {
				origin = o.Origin
			}
			fmt.Fprintf(w, "%s\t%s\n", name, origin)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d mod(s) active\n", len(mods))
		return nil
	})
}
