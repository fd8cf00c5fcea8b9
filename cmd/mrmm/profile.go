package main

import (
	"fmt"
	"io"
	"strings"

	"mrmm/internal/core"
	"mrmm/internal/linker"

	"github.com/spf13/cobra"
)

var profileDeleteYes bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage mod profiles",
	Long: `Profiles are named snapshots of the live mods directory. Loading a
profile replaces the live directory's contents with the profile's mods.`,
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List profiles",
	Args:    cobra.NoArgs,
	RunE:    runProfileList,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the live mods as a new profile and make it current",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSave,
}

var profileLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Replace the live mods with a profile and make it current",
	Long: `Replace the live mods with a profile's mods and make it current.

If some files cannot be copied or removed, the live directory is left
holding a mix of both profiles and the previous profile stays current.
The current profile is then not updated from the live directory when
this session ends; load again or run 'mrmm profile sync' once fixed.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileLoad,
}

var profileDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a profile and its stored mods",
	Args:    cobra.ExactArgs(1),
	RunE:    runProfileDelete,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the mods stored in a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update the current profile from the live mods directory",
	Args:  cobra.NoArgs,
	RunE:  runProfileSync,
}

func init() {
	profileDeleteCmd.Flags().BoolVarP(&profileDeleteYes, "yes", "y", false, "skip confirmation prompt")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileLoadCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSyncCmd)

	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		out := cmd.OutOrStdout()

		profiles, err := svc.ListProfiles()
		if len(profiles) == 0 && err == nil {
			fmt.Fprintln(out, "No profiles.")
			return nil
		}
		current := svc.CurrentProfile()
		for _, p := range profiles {
			marker := " "
			if p.Name == current {
				marker = colorGreen("*")
			}
			fmt.Fprintf(out, "%s %s (%d mods)\n", marker, p.Name, len(p.Mods))
		}
		return err
	})
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		profile, err := svc.SaveAsProfile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Saved profile %q with %d mod(s)\n", colorGreen("✓"), profile.Name, len(profile.Mods))
		return nil
	})
}

func runProfileLoad(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		out := cmd.OutOrStdout()

		report, err := svc.LoadProfile(args[0])
		printReport(out, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s Loaded profile %q\n", colorGreen("✓"), args[0])
		return nil
	})
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		out := cmd.OutOrStdout()

		if !profileDeleteYes && !confirm(cmd, fmt.Sprintf("Delete profile %q?", args[0])) {
			fmt.Fprintln(out, "Aborted.")
			return ErrCancelled
		}
		if err := svc.DeleteProfile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s Deleted profile %q\n", colorGreen("✓"), args[0])
		return nil
	})
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		out := cmd.OutOrStdout()

		profile, err := svc.GetProfile(args[0])
		if err != nil {
			return err
		}
		title := profile.Name
		if profile.Name == svc.CurrentProfile() {
			title += " (current)"
		}
		fmt.Fprintln(out, title)
		fmt.Fprintln(out, strings.Repeat("-", len(title)))
		if len(profile.Mods) == 0 {
			fmt.Fprintln(out, "No mods.")
			return nil
		}
		for _, name := range profile.Mods {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	})
}

func runProfileSync(cmd *cobra.Command, args []string) error {
	return runSession(cmd, func(svc *core.Service) error {
		out := cmd.OutOrStdout()

		current := svc.CurrentProfile()
		if current == "" {
			fmt.Fprintln(out, "No current profile.")
			return nil
		}
		report, err := svc.ShutdownSync()
		if err != nil {
			printReport(out, report)
			return err
		}
		if report == nil {
			fmt.Fprintf(out, "Profile %q not synced: no live mods directory.\n", current)
			return nil
		}
		printReport(out, report)
		fmt.Fprintf(out, "%s Profile %q matches the live mods\n", colorGreen("✓"), current)
		return nil
	})
}

// printReport lists what a reconcile changed
func printReport(out io.Writer, report *linker.Report) {
	if report == nil {
		return
	}
	for _, name := range report.Added {
		fmt.Fprintf(out, "  %s %s\n", colorGreen("+"), name)
	}
	for _, name := range report.Removed {
		fmt.Fprintf(out, "  %s %s\n", colorYellow("-"), name)
	}
	for _, f := range report.Failures {
		fmt.Fprintf(out, "  %s %v\n", colorRed("✗"), f)
	}
}
