package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/themekit/internal/ops"
)

func loggerFlags(level string, jsonLogs, noColor, noOp bool) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("log-level", level, "")
	cmd.Flags().Bool("json", jsonLogs, "")
	cmd.Flags().Bool("no-color", noColor, "")
	cmd.Flags().Bool("no-op", noOp, "")
	return cmd
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		json    bool
		noColor bool
		noOp    bool
	}{
		{name: "default", level: "info"},
		{name: "debug", level: "debug"},
		{name: "invalid level falls back to info", level: "invalid"},
		{name: "json", level: "info", json: true},
		{name: "no color", level: "info", noColor: true},
		{name: "no-op", level: "info", noOp: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must not panic or exit.
			initializeLogger(loggerFlags(tt.level, tt.json, tt.noColor, tt.noOp))
		})
	}
}

func TestRootVersionIsSet(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("rootCmd.Version should not be empty")
	}
}

func TestRootCommandsAreGrouped(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		reg, ok := ops.GetRegistry().GetCommand(c.Name())
		if !ok {
			t.Errorf("command %s is not registered with the ops registry", c.Name())
			continue
		}
		if c.GroupID != string(reg.Group) {
			t.Errorf("command %s has group %q, registry says %q", c.Name(), c.GroupID, reg.Group)
		}
	}
}

func TestRootHelp_ListsGroups(t *testing.T) {
	out, err := execRoot(t, "", "--help")
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}
	for _, want := range []string{"Theme Commands:", "Scaffold Commands:", "Support Commands:", "  add ", "  doctor "} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Theme Commands:") > strings.Index(out, "Support Commands:") {
		t.Error("theme commands should be listed before support commands")
	}
}
