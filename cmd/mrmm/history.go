package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent mod operations",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	entries, err := svc.History(historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tOPERATION\tPROFILE\tADDED\tREMOVED\tFAILED")
	for _, a := range entries {
		profile := a.ProfileName
		if profile == "" {
			profile = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			a.CreatedAt.Local().Format("2006-01-02 15:04"), a.Operation, profile, a.Added, a.Removed, a.Failed)
	}
	return w.Flush()
}
