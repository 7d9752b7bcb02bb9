// Package cli provides the command-line interface for lottostat.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lottostat/internal/cli/commands"
	"github.com/ccollicutt/lottostat/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()

	// An unknown first word may name a plugin
	if name, ok := pluginCandidate(rootCmd, os.Args[1:]); ok {
		if pluginPath, err := plugins.FindPlugin(name); err == nil {
			return plugins.Execute(ctx, pluginPath, os.Args[2:], plugins.StdStreams())
		}
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if name, ok := pluginCandidate(rootCmd, os.Args[1:]); ok {
			_, _ = fmt.Fprintln(os.Stderr, plugins.FormatNotFoundError(name))
			return 2
		}
		// SilenceErrors keeps cobra from printing this itself
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// pluginCandidate returns the first argument when it is neither a flag nor
// a built-in command.
func pluginCandidate(rootCmd *cobra.Command, args []string) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	name := args[0]
	if name == "" || name[0] == '-' || isBuiltinCommand(rootCmd, name) {
		return "", false
	}
	return name, true
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// cobra adds these lazily
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lottostat",
		Short: "Find the most common winning numbers in lottery draw history",
		Long: `lottostat streams a tab-delimited lottery draw history, counts how often
each winning number (0-49) was drawn, and reports the most common ones.

Progress and an estimated time left are shown on stderr while the file is
read; the report goes to stdout as text, JSON, or an Excel workbook.

CONFIGURATION:
  Settings come from, highest priority first: command-line flags,
  LOTTOSTAT_* environment variables, a YAML file given with --config,
  and built-in defaults.

PLUGINS:
  Unknown commands are run as plugins: standalone binaries named
  lottostat-<command>.

  Plugin locations (searched in order):
    1. Same directory as the lottostat binary
    2. $LOTTOSTAT_PLUGIN_DIR, or ~/.lottostat/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewTallyCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
