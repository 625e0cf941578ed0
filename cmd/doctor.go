package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fulmenhq/themekit/internal/installer"
	"github.com/fulmenhq/themekit/internal/ops"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the theme files can be patched",
	Long: `Check app.css and the theme registry without modifying anything: both must
parse, every installed stylesheet must be imported and registered, and every
registered theme must have a stylesheet.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var severityStyles = map[installer.Severity]lipgloss.Style{
	installer.SeverityOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	installer.SeverityWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	installer.SeverityError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

func init() {
	doctorCmd.Flags().String("format", "text", "Output format (text|json)")

	if err := ops.RegisterCommand("doctor", ops.GroupSupport, doctorCmd, "Diagnose theme files"); err != nil {
		panic(fmt.Sprintf("Failed to register doctor command: %v", err))
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	findings, err := env.installer().Diagnose()
	if err != nil {
		return err
	}

	problems := 0
	for _, f := range findings {
		if f.Severity == installer.SeverityError {
			problems++
		}
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(findings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode findings: %w", err)
		}
		fmt.Fprintln(env.out, string(data))
	case "text", "":
		for _, f := range findings {
			label := fmt.Sprintf("%-5s", f.Severity)
			if style, ok := severityStyles[f.Severity]; ok && env.color {
				label = style.Render(label)
			}
			fmt.Fprintf(env.out, "%s %s: %s\n", label, f.Path, f.Message)
		}
	default:
		return fmt.Errorf("unknown format %q (expected text or json)", format)
	}

	if problems > 0 {
		return fmt.Errorf("doctor found %d problem(s)", problems)
	}
	return nil
}
