package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mrmm/internal/core"
	"mrmm/internal/logging"
	"mrmm/internal/storage/config"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
)

// ErrCancelled is returned when the user cancels an operation (e.g. prompt declined).
// When returned from a command, Execute exits with code 2.
var ErrCancelled = errors.New("cancelled")

var (
	version = "0.3.0"

	// Global flags
	configDir string
	dataDir   string
	verbosity int
	noColor   bool
	noSync    bool

	closeLog = func() error { return nil }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mrmm",
	Short: "Marvel Rivals Mod Manager - .pak mod manager for Linux",
	Long: `mrmm manages .pak mods for Marvel Rivals on Linux.

Archives and .pak files are staged, applied to the game's live mods
directory, and saved as named profiles that can be switched at any time.
The current profile is updated from the live directory when a session ends.

Run 'mrmm tui' for the interactive interface, or 'mrmm --help' for commands.`,
	Version:           version,
	SilenceUsage:      true, // Runtime errors should not print usage
	SilenceErrors:     true, // We handle error output in Execute()
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/mrmm)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: ~/.local/share/mrmm)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noSync, "no-sync", false, "do not update the current profile from the live directory on exit")
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
func colorEnabled() bool {
	if noColor {
		return false
	}
	return os.Getenv("NO_COLOR") == ""
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

func colorize(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return code + s + ansiReset
}

func colorGreen(s string) string  { return colorize(ansiGreen, s) }
func colorRed(s string) string    { return colorize(ansiRed, s) }
func colorYellow(s string) string { return colorize(ansiYellow, s) }

// Execute runs the root command. Exit codes: 0 = success, 1 = error, 2 = user cancelled.
func Execute() {
	err := rootCmd.Execute()
	_ = closeLog()
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends logs to the data directory and, outside the TUI, to stderr
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, env, err := getServiceConfig()
	if err != nil {
		return err
	}

	var console io.Writer = cmd.ErrOrStderr()
	if cmd.Name() == "tui" {
		console = nil
	}

	closeLog = logging.Setup(logging.Options{
		Verbosity: verbosity,
		Level:     env.LogLevel,
		Console:   console,
		File:      filepath.Join(cfg.DataDir, logging.LogFileName),
	})
	return nil
}

// getServiceConfig resolves directories from flags, then environment, then XDG defaults
func getServiceConfig() (core.ServiceConfig, config.Env, error) {
	env, err := config.ParseEnv()
	if err != nil {
		return core.ServiceConfig{}, config.Env{}, err
	}

	cfg := core.ServiceConfig{
		ConfigDir: firstNonEmpty(configDir, env.ConfigDir, filepath.Join(xdg.ConfigHome, "mrmm")),
		DataDir:   firstNonEmpty(dataDir, env.DataDir, filepath.Join(xdg.DataHome, "mrmm")),
		GameDir:   env.GameDir,
	}
	return cfg, env, nil
}

// initService creates the core service
func initService() (*core.Service, error) {
	cfg, _, err := getServiceConfig()
	if err != nil {
		return nil, err
	}
	svc, err := core.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing service: %w", err)
	}
	return svc, nil
}

// runSession opens a service, makes sure a profile exists, runs fn and
// shuts the session down. The shutdown syncs the current profile from the
// live directory unless --no-sync was given.
func runSession(cmd *cobra.Command, fn func(svc *core.Service) error) error {
	svc, err := initService()
	if err != nil {
		return err
	}

	created, err := svc.EnsureDefaultProfile()
	if err != nil {
		_ = svc.Shutdown(false)
		return fmt.Errorf("creating default profile: %w", err)
	}
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Created profile %q\n", svc.CurrentProfile())
	}

	runErr := fn(svc)
	if err := svc.Shutdown(!noSync); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// confirm asks a yes/no question on the command's input
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	var response string
	_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
	return response == "y" || response == "Y"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
