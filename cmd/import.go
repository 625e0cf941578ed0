package cmd

import (
	"fmt"

	"github.com/fulmenhq/themekit/internal/installer"
	"github.com/fulmenhq/themekit/internal/ops"
	"github.com/fulmenhq/themekit/pkg/ascii"
	"github.com/fulmenhq/themekit/pkg/theme"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [url]",
	Short: "Import a theme interactively",
	Long: `Import a theme from a registry URL or a local JSON, YAML or TOML file.

When no URL is given it is read from stdin. If the theme is already installed
you are asked before it is overwritten, unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("name", "", "Theme name (default: the name in the definition)")
	importCmd.Flags().String("description", "", "Registry description for the theme")
	importCmd.Flags().Bool("force", false, "Overwrite an installed theme without asking")

	if err := ops.RegisterCommand("import", ops.GroupTheme, importCmd, "Import a theme with prompts"); err != nil {
		panic(fmt.Sprintf("Failed to register import command: %v", err))
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	force, _ := cmd.Flags().GetBool("force")

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	p := newPrompter(cmd)

	source := ""
	if len(args) > 0 {
		source = args[0]
	} else {
		source, err = p.ask("Theme URL: ")
		if err != nil {
			return err
		}
	}
	if source == "" {
		return &theme.InputError{Source: "<stdin>", Reason: "no theme URL given"}
	}

	in := env.installer()
	req := installer.Request{Source: source, Name: name, Description: description, Force: force}
	if !force {
		src, id, exists, err := in.Probe(cmd.Context(), req)
		if err != nil {
			return err
		}
		req.Loaded = src
		if exists {
			ok, err := p.confirm(fmt.Sprintf("Theme '%s' already exists. Overwrite it?", id))
			if err != nil {
				return err
			}
			if !ok {
				env.line(ascii.Skipped, id)
				return nil
			}
			req.Force = true
		}
	}
	return install(cmd, env, in, req)
}
