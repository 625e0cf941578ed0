/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"os"

	"github.com/fulmenhq/themekit/internal/ops"
	"github.com/fulmenhq/themekit/pkg/buildinfo"
	"github.com/fulmenhq/themekit/pkg/exitcode"
	"github.com/fulmenhq/themekit/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themekit",
		Short: "Install and manage color themes for Tailwind front ends",
		Long: `Themekit fetches shadcn-style theme definitions and installs them into a
Tailwind front end: one stylesheet per theme, an import in app.css and an
entry in the TypeScript theme registry. Every edit is anchor-based and
idempotent, so running a command twice changes nothing the second time.

Examples:
   themekit setup --stack react                       # Install the theme switcher scaffold
   themekit add https://tweakcn.com/r/themes/vintage-paper.json
   themekit import --name "Ocean Breeze" ./ocean.yaml # Install from a local file
   themekit list                                      # Show installed themes
   themekit remove vintage-paper                      # Remove a theme`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "warn", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("no-op", false, "Compute every change without writing files")
	cmd.PersistentFlags().String("root", "", "Resource root directory (overrides resources.root)")
	cmd.PersistentFlags().String("config", "", "Config file (default: .themekit.yaml or $HOME/.themekit/themekit.yaml)")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("themekit {{.Version}}\n")

	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if cmd.HasParent() {
			desc := cmd.Long
			if desc == "" {
				desc = cmd.Short
			}
			cmd.Println(desc)
			cmd.Println()
			cmd.Print(cmd.UsageString())
			return
		}
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		for _, group := range ops.Groups {
			cmds := reg.GetCommandsByGroup(group)
			if len(cmds) == 0 {
				continue
			}
			cmd.Println(group.Title())
			for _, c := range cmds {
				cmd.Printf("  %-10s %s\n", c.Name, c.Description)
			}
			cmd.Println()
		}
		cmd.Println("Flags:")
		cmd.Print(cmd.LocalFlags().FlagUsages())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddGroup(ops.CobraGroups()...)
	cmd.AddCommand(addCmd)
	cmd.AddCommand(importCmd)
	cmd.AddCommand(removeCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(setupCmd)
	cmd.AddCommand(updateCmd)
	cmd.AddCommand(versionCmd)
	cmd.AddCommand(doctorCmd)
	cmd.SetHelpCommandGroupID(string(ops.GroupSupport))
	cmd.SetCompletionCommandGroupID(string(ops.GroupSupport))
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command and exits with the code mapped from its error.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		code := exitcode.ForError(err)
		logger.Error("Command execution failed", logger.Err(err), logger.String("exit", exitcode.String(code)))
		os.Exit(code)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	noOp, _ := cmd.Flags().GetBool("no-op")

	logLevel, parseErr := logger.ParseLevel(logLevelStr)
	if parseErr != nil {
		logLevel = logger.InfoLevel
	}

	config := logger.Config{
		Level:     logLevel,
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "themekit",
		NoOp:      noOp,
		Output:    cmd.ErrOrStderr(),
	}

	if err := logger.Initialize(config); err != nil {
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
	if parseErr != nil {
		logger.Warn("Unknown log level, using info", logger.String("level", logLevelStr))
	}
}
