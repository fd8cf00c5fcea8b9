package steam

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// launchTimeout bounds how long the URL opener may take to hand off
const launchTimeout = 30 * time.Second

// Runner starts an external command
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command and waits for it
func ExecRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}

// LaunchURL returns the Steam URL that starts appID
func LaunchURL(appID string) string {
	return "steam://rungameid/" + appID
}

// Launch asks the desktop to open the Steam URL for appID
func Launch(ctx context.Context, run Runner, appID string) error {
	if run == nil {
		run = ExecRunner
	}
	ctx, cancel := context.WithTimeout(ctx, launchTimeout)
	defer cancel()

	if err := run(ctx, "xdg-open", LaunchURL(appID)); err != nil {
		return fmt.Errorf("launching game: %w", err)
	}
	return nil
}
