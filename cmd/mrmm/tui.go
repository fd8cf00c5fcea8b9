package main

import (
	"fmt"

	"mrmm/internal/core"
	"mrmm/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface",
	Long: `Open the interactive interface for staging, applying and removing
mods, switching profiles and changing settings.

The current profile is updated from the live mods directory on exit
unless --no-sync is given.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		p := tea.NewProgram(tui.NewApp(svc), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running interface: %w", err)
		}
		return nil
	})
}
