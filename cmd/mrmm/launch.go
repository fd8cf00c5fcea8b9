package main

import (
	"fmt"

	"mrmm/internal/domain"
	"mrmm/internal/steam"

	"github.com/spf13/cobra"
)

// launchRunner starts the URL opener
var launchRunner steam.Runner = steam.ExecRunner

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start Marvel Rivals through Steam",
	Args:  cobra.NoArgs,
	RunE:  runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	if err := steam.Launch(cmd.Context(), launchRunner, domain.SteamAppID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Launching %s\n", steam.LaunchURL(domain.SteamAppID))
	return nil
}
