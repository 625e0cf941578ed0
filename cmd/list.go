package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fulmenhq/themekit/internal/installer"
	"github.com/fulmenhq/themekit/internal/ops"
	"github.com/fulmenhq/themekit/pkg/ascii"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed themes",
	Long: `List the themes found in the themes directory and the registry.

The status column flags themes whose stylesheet and registry entry are out of
step, for example after a file was edited by hand.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("format", "text", "Output format (text|json|yaml)")

	if err := ops.RegisterCommand("list", ops.GroupTheme, listCmd, "List installed themes"); err != nil {
		panic(fmt.Sprintf("Failed to register list command: %v", err))
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	themes, err := env.installer().List()
	if err != nil {
		return err
	}
	return renderThemes(env, themes, format)
}

func renderThemes(env *environment, themes []installer.Installed, format string) error {
	switch strings.ToLower(format) {
	case "json":
		if themes == nil {
			themes = []installer.Installed{}
		}
		data, err := json.MarshalIndent(themes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode themes: %w", err)
		}
		fmt.Fprintln(env.out, string(data))
	case "yaml":
		enc := yaml.NewEncoder(env.out)
		enc.SetIndent(2)
		if err := enc.Encode(themes); err != nil {
			return fmt.Errorf("failed to encode themes: %w", err)
		}
		return enc.Close()
	case "text", "":
		table := ascii.Table{
			Headers:  []string{"ID", "NAME", "STATUS", "DESCRIPTION"},
			MaxWidth: 48,
			Color:    env.color,
		}
		for _, t := range themes {
			table.Rows = append(table.Rows, []string{t.ID, t.Name, themeStatus(t), t.Description})
		}
		fmt.Fprint(env.out, table.Render())
	default:
		return fmt.Errorf("unknown format %q (expected text, json or yaml)", format)
	}
	return nil
}

func themeStatus(t installer.Installed) string {
	switch {
	case t.Protected:
		return "protected"
	case t.Stylesheet && t.Registered:
		return "installed"
	case t.Stylesheet:
		return "unregistered"
	default:
		return "no stylesheet"
	}
}
