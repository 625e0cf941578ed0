package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fulmenhq/themekit/internal/installer"
	"github.com/fulmenhq/themekit/pkg/ascii"
	"github.com/fulmenhq/themekit/pkg/config"
	"github.com/fulmenhq/themekit/pkg/exitcode"
	"github.com/fulmenhq/themekit/pkg/fetch"
	"github.com/fulmenhq/themekit/pkg/patch"
	"github.com/fulmenhq/themekit/pkg/scaffold"
	"github.com/fulmenhq/themekit/pkg/theme"
	"github.com/fulmenhq/themekit/pkg/workspace"
	"github.com/spf13/cobra"
)

// newFetcher builds the client used for remote theme definitions. Tests
// replace it with a mock-backed client.
var newFetcher = func(opts fetch.Options) theme.Fetcher {
	return fetch.NewClient(opts)
}

// environment is the per-invocation state shared by the theme commands.
type environment struct {
	cfg   *config.Config
	ws    *workspace.Workspace
	color bool
	out   io.Writer
}

// loadEnvironment reads the configuration, applies the global flags and
// opens the workspace.
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(config.Options{File: file})
	if err != nil {
		return nil, exitcode.WithCode(exitcode.ConfigError, err)
	}
	if root, _ := cmd.Flags().GetString("root"); strings.TrimSpace(root) != "" {
		cfg.Resources.Root = root
	}
	noOp, _ := cmd.Flags().GetBool("no-op")
	noColor, _ := cmd.Flags().GetBool("no-color")

	layout := workspace.Layout{
		Root:      cfg.Resources.Root,
		ThemesDir: cfg.Resources.ThemesDir,
		AppCSS:    cfg.Resources.AppCSS,
		Registry:  cfg.Resources.Registry,
	}
	return &environment{
		cfg:   cfg,
		ws:    workspace.New(layout, workspace.WithDryRun(noOp)),
		color: !noColor,
		out:   cmd.OutOrStdout(),
	}, nil
}

func (e *environment) installer() *installer.Installer {
	client := newFetcher(fetch.Options{
		Timeout:   e.cfg.Fetch.Timeout,
		UserAgent: e.cfg.Fetch.UserAgent,
	})
	return installer.New(e.ws, theme.NewLoader(client), installer.Options{
		Protected:          e.cfg.Themes.Protected,
		DefaultDescription: e.cfg.Themes.DefaultDescription,
		FontProvider:       e.cfg.Fonts.ProviderURL,
		FontPlacement:      e.cfg.Fonts.Placement,
		MergeSensitive:     e.cfg.Render.MergeSensitive,
	})
}

// stack returns the flag value when set, otherwise the configured stack.
func (e *environment) stack(cmd *cobra.Command, flag *stackValue) scaffold.Stack {
	if cmd.Flags().Changed("stack") {
		return flag.stack
	}
	s, err := scaffold.ParseStack(e.cfg.Stack)
	if err != nil {
		return scaffold.StackAuto
	}
	return s
}

func (e *environment) line(action ascii.Action, subject string) {
	if e.ws.DryRun() && action != ascii.Skipped && action != ascii.Unchanged && action != ascii.Failed {
		subject = string(action) + " " + subject
		action = ascii.Planned
	}
	fmt.Fprintln(e.out, ascii.Line(action, subject, e.color))
}

func (e *environment) notices(notices []string) {
	for _, n := range notices {
		fmt.Fprintf(e.out, "  note: %s\n", n)
	}
}

// printChanges writes one result line per file of an install or remove.
func (e *environment) printChanges(report *installer.Report) {
	if report == nil {
		return
	}
	created := e.ws.Layout().ThemeCSS(report.ThemeID)
	for _, c := range report.Changes {
		var action ascii.Action
		switch c.Outcome {
		case patch.Inserted:
			action = ascii.Updated
			if c.Path == created {
				action = ascii.Created
			}
		case patch.Replaced:
			action = ascii.Updated
		case patch.Removed:
			action = ascii.Removed
		case patch.NotFound:
			action = ascii.Skipped
		default:
			action = ascii.Unchanged
		}
		e.line(action, c.Path)
	}
}

// printFailures lists the files a partial apply could not update.
func (e *environment) printFailures(err error) {
	var partial *installer.PartialApplyError
	if !errors.As(err, &partial) {
		return
	}
	for _, f := range partial.Failed {
		e.line(ascii.Failed, fmt.Sprintf("%s (%v)", f.Path, f.Err))
	}
}

// stackValue is a pflag.Value restricted to react, vue and auto.
type stackValue struct {
	stack scaffold.Stack
}

func (s *stackValue) String() string {
	if s.stack == scaffold.StackAuto {
		return "auto"
	}
	return string(s.stack)
}

func (s *stackValue) Set(v string) error {
	stack, err := scaffold.ParseStack(v)
	if err != nil {
		return err
	}
	s.stack = stack
	return nil
}

func (s *stackValue) Type() string { return "stack" }

// prompter reads answers from the command's stdin. One prompter must be used
// per command run so buffered input is not lost between questions.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

// ask prints question and returns the trimmed answer. End of input yields an
// empty answer.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	answer, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	if err == io.EOF {
		fmt.Fprintln(p.out)
	}
	return strings.TrimSpace(answer), nil
}

// confirm asks a yes/no question that defaults to no.
func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
