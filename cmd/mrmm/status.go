package main

import (
	"fmt"

	"mrmm/internal/core"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Compare the live mods directory with the current profile",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := requireGame(svc); err != nil {
		return err
	}

	st, err := svc.Status()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	profile := st.CurrentProfile
	if profile == "" {
		profile = "(none)"
	}
	fmt.Fprintf(out, "Game:    %s\n", st.GameDir)
	fmt.Fprintf(out, "Profile: %s\n", profile)
	fmt.Fprintf(out, "Live:    %d mod(s)\n", len(st.Live))

	if st.CurrentProfile == "" {
		return nil
	}
	fmt.Fprintf(out, "State:   %s\n", statusLine(st))
	if st.InSync() {
		return nil
	}
	fmt.Fprintln(out)
	for _, name := range st.Missing {
		fmt.Fprintf(out, "  %s %s (in profile, not live)\n", colorRed("-"), name)
	}
	for _, name := range st.Extra {
		fmt.Fprintf(out, "  %s %s (live, not in profile)\n", colorYellow("+"), name)
	}
	return nil
}

// statusLine summarizes drift in one line
func statusLine(st *core.Status) string {
	if st.InSync() {
		return colorGreen("in sync")
	}
	return fmt.Sprintf("%d missing, %d extra", len(st.Missing), len(st.Extra))
}
