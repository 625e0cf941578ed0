/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"

	"github.com/fulmenhq/themekit/internal/installer"
	"github.com/fulmenhq/themekit/internal/ops"
	"github.com/fulmenhq/themekit/pkg/ascii"
	"github.com/fulmenhq/themekit/pkg/fetch"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Install a theme from a registry URL",
	Long: `Install a theme from a shadcn-style registry URL or a local definition file.

The theme stylesheet is written to the themes directory, app.css gains an
import for it and the registry gets a union member and an entry. A theme that
is already installed is left alone unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().Bool("force", false, "Overwrite the theme if it is already installed")

	if err := ops.RegisterCommand("add", ops.GroupTheme, addCmd, "Install a theme from a URL"); err != nil {
		panic(fmt.Sprintf("Failed to register add command: %v", err))
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	return install(cmd, env, env.installer(), installer.Request{Source: args[0], Force: force})
}

// install runs one installation and prints its outcome.
func install(cmd *cobra.Command, env *environment, in *installer.Installer, req installer.Request) error {
	report, err := in.Install(cmd.Context(), req)
	if report != nil && report.Skipped {
		env.line(ascii.Skipped, fmt.Sprintf("%s (already installed, use --force to overwrite)", report.ThemeID))
		return nil
	}
	env.printChanges(report)
	if err != nil {
		env.printFailures(err)
		switch {
		case fetch.IsNotFound(err):
			env.notices([]string{"the registry has no theme at that URL"})
		case fetch.IsNetworkError(err):
			env.notices([]string{"check the network connection or raise fetch.timeout"})
		}
		return err
	}
	env.notices(report.Notices)

	verb := "installed"
	if report.Existed {
		verb = "replaced"
	}
	if report.DryRun {
		verb = "would be " + verb
	}
	fmt.Fprintf(env.out, "Theme '%s' (%s) %s.\n", report.DisplayName, report.ThemeID, verb)
	return nil
}
