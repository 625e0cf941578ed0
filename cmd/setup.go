package cmd

import (
	"fmt"

	"github.com/fulmenhq/themekit/internal/ops"
	"github.com/fulmenhq/themekit/pkg/ascii"
	"github.com/fulmenhq/themekit/pkg/logger"
	"github.com/fulmenhq/themekit/pkg/scaffold"
	"github.com/spf13/cobra"
)

var setupStack stackValue

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install the theme switching scaffold",
	Long: `Install the theme registry, the starter themes, the state hook or composable
and (in starter mode) the theme switcher component, then patch app.css and
the app entry file so the active theme is applied on load.

Modes:
  starter     everything, including the switcher component
  standalone  the state hook or composable only, for a custom UI`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().String("mode", string(scaffold.ModeStarter), "Setup mode (starter|standalone)")
	setupCmd.Flags().Var(&setupStack, "stack", "Front-end stack (react|vue|auto)")

	if err := ops.RegisterCommand("setup", ops.GroupScaffold, setupCmd, "Install the theme switcher scaffold"); err != nil {
		panic(fmt.Sprintf("Failed to register setup command: %v", err))
	}
}

func runSetup(cmd *cobra.Command, _ []string) error {
	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := scaffold.ParseMode(modeStr)
	if err != nil {
		return err
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	report, err := scaffold.New(env.ws).Setup(mode, env.stack(cmd, &setupStack))
	printScaffold(env, report)
	if err != nil {
		return err
	}
	logger.Info("Scaffold installed", logger.String("stack", string(report.Stack)), logger.Strings("written", report.Written))
	fmt.Fprintf(env.out, "%s scaffold (%s) ready.\n", report.Stack.Label(), mode)
	if !env.ws.DryRun() {
		fmt.Fprint(env.out, ascii.Box([]string{
			"Next steps:",
			"  themekit add <url>   install a theme from a registry",
			"  themekit list        show installed themes",
		}))
	}
	return nil
}

func printScaffold(env *environment, report *scaffold.Report) {
	if report == nil {
		return
	}
	for _, rel := range report.Written {
		env.line(ascii.Created, rel)
	}
	for _, rel := range report.Patched {
		env.line(ascii.Updated, rel)
	}
	env.notices(report.Notices)
}
