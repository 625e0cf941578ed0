package cmd

import (
	"fmt"

	"github.com/fulmenhq/themekit/internal/assets"
	"github.com/fulmenhq/themekit/internal/ops"
	"github.com/fulmenhq/themekit/pkg/scaffold"
	"github.com/spf13/cobra"
)

var updateStack stackValue

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the theme switcher component",
	Long: `Overwrite the installed theme switcher component with the version bundled
with this release. Local edits to the component are lost, so you are asked
first unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("force", false, "Overwrite without asking for confirmation")
	updateCmd.Flags().Var(&updateStack, "stack", "Front-end stack (react|vue|auto)")

	if err := ops.RegisterCommand("update", ops.GroupScaffold, updateCmd, "Update the theme switcher component"); err != nil {
		panic(fmt.Sprintf("Failed to register update command: %v", err))
	}
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	s := scaffold.New(env.ws)
	stack := env.stack(cmd, &updateStack)
	if stack == scaffold.StackAuto {
		stack = s.DetectStack()
	}

	if info, ok := assets.Lookup(string(stack), assets.RoleSwitcher); ok && !force && env.ws.Exists(info.Path) {
		ok, err := newPrompter(cmd).confirm(fmt.Sprintf("Overwrite %s with the bundled version?", info.Path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(env.out, "Aborted.")
			return nil
		}
	}

	report, err := s.Update(stack)
	printScaffold(env, report)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "%s theme switcher updated.\n", report.Stack.Label())
	return nil
}
