package cmd

import (
	"fmt"
	"strconv"

	"github.com/fulmenhq/themekit/internal/installer"
	"github.com/fulmenhq/themekit/internal/ops"
	"github.com/fulmenhq/themekit/pkg/theme"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [id]",
	Aliases: []string{"rm"},
	Short:   "Remove an installed theme",
	Long: `Remove a theme's stylesheet, its app.css import and its registry entry.

Without an id you are asked to pick one of the installed themes. Protected
themes (default: "default") are never removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().Bool("list", false, "List installed themes and exit")
	removeCmd.Flags().Bool("force", false, "Remove without asking for confirmation")

	if err := ops.RegisterCommand("remove", ops.GroupTheme, removeCmd, "Remove an installed theme"); err != nil {
		panic(fmt.Sprintf("Failed to register remove command: %v", err))
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	force, _ := cmd.Flags().GetBool("force")

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	in := env.installer()

	if list {
		themes, err := in.List()
		if err != nil {
			return err
		}
		return renderThemes(env, themes, "text")
	}

	p := newPrompter(cmd)
	id := ""
	if len(args) > 0 {
		id = theme.Slugify(args[0])
	} else {
		id, err = chooseTheme(env, in, p)
		if err != nil || id == "" {
			return err
		}
	}

	if in.IsProtected(id) {
		return &installer.ProtectedResourceError{ID: id}
	}
	if !force {
		ok, err := p.confirm(fmt.Sprintf("Remove theme '%s'?", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(env.out, "Aborted.")
			return nil
		}
	}

	report, err := in.Remove(id)
	env.printChanges(report)
	if err != nil {
		env.printFailures(err)
		return err
	}
	env.notices(report.Notices)
	if report.DryRun {
		fmt.Fprintf(env.out, "Theme '%s' would be removed.\n", report.ThemeID)
	} else {
		fmt.Fprintf(env.out, "Theme '%s' removed.\n", report.ThemeID)
	}
	return nil
}

// chooseTheme lists the removable themes and reads a selection. An empty id
// means there was nothing to remove.
func chooseTheme(env *environment, in *installer.Installer, p *prompter) (string, error) {
	themes, err := in.List()
	if err != nil {
		return "", err
	}
	var ids []string
	for _, t := range themes {
		if !t.Protected {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		fmt.Fprintln(env.out, "No removable themes are installed.")
		return "", nil
	}

	for i, id := range ids {
		fmt.Fprintf(env.out, "  %d) %s\n", i+1, id)
	}
	answer, err := p.ask(fmt.Sprintf("Select a theme to remove [1-%d]: ", len(ids)))
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(ids) {
		return "", &theme.InputError{Source: answer, Reason: "not a valid selection"}
	}
	return ids[n-1], nil
}
