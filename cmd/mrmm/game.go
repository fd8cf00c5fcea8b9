package main

import (
	"fmt"

	"mrmm/internal/core"
	"mrmm/internal/domain"
	"mrmm/internal/steam"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// detectGameRoot searches the local Steam libraries for the game
var detectGameRoot = func() (string, error) {
	return steam.NewLocator(afero.NewOsFs()).DetectGameRoot()
}

var gameDetectSave bool

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Show or change the game directory",
}

var gameSetCmd = &cobra.Command{
	Use:   "set <dir>",
	Short: "Set the Marvel Rivals installation directory",
	Long: `Set the Marvel Rivals installation directory. The directory must
contain ` + domain.LauncherExecutable + `.

Examples:
  mrmm game set ~/.local/share/Steam/steamapps/common/MarvelRivals`,
	Args: cobra.ExactArgs(1),
	RunE: runGameSet,
}

var gameShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured game and live mods directories",
	Args:  cobra.NoArgs,
	RunE:  runGameShow,
}

var gameDetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Find the game in the local Steam libraries",
	Args:  cobra.NoArgs,
	RunE:  runGameDetect,
}

func init() {
	gameDetectCmd.Flags().BoolVar(&gameDetectSave, "save", false, "store the detected directory in the config")

	gameCmd.AddCommand(gameSetCmd)
	gameCmd.AddCommand(gameShowCmd)
	gameCmd.AddCommand(gameDetectCmd)

	rootCmd.AddCommand(gameCmd)
}

func runGameSet(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.SetGameDir(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Game directory set to %s\n", colorGreen("✓"), svc.GameDir())
	return nil
}

func runGameShow(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	dir := svc.GameDir()
	if dir == "" {
		fmt.Fprintln(out, "Game directory not set. Use 'mrmm game set <dir>' or 'mrmm game detect --save'.")
		return nil
	}
	fmt.Fprintf(out, "Game directory: %s\n", dir)

	live, err := svc.LiveDir()
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", colorRed("✗"), err)
		return nil
	}
	fmt.Fprintf(out, "Live mods:      %s\n", live)
	return nil
}

func runGameDetect(cmd *cobra.Command, args []string) error {
	dir, err := detectGameRoot()
	if err != nil {
		return fmt.Errorf("detecting game: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Found Marvel Rivals at %s\n", dir)
	if !gameDetectSave {
		return nil
	}

	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.SetGameDir(dir); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Game directory saved\n", colorGreen("✓"))
	return nil
}

// requireGame fails early when no usable game directory is configured
func requireGame(svc *core.Service) error {
	if _, err := svc.Game(); err != nil {
		return fmt.Errorf("%w; use 'mrmm game set <dir>' or 'mrmm game detect --save'", err)
	}
	return nil
}
