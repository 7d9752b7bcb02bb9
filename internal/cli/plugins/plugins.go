// Package plugins runs lottostat-<command> binaries for subcommands that
// are not built in, the way git and kubectl do.
package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Prefix is prepended to a command name to form the plugin binary name.
const Prefix = "lottostat-"

// DirEnv overrides the per-user plugin directory.
const DirEnv = "LOTTOSTAT_PLUGIN_DIR"

// ErrPluginNotFound is returned when no plugin binary can be located.
var ErrPluginNotFound = errors.New("plugin not found")

// Dirs returns the directories searched before PATH, in order: the
// directory holding the lottostat binary, then $LOTTOSTAT_PLUGIN_DIR or
// ~/.lottostat/plugins.
func Dirs() []string {
	var dirs []string

	if execPath, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(execPath))
	}

	if dir := os.Getenv(DirEnv); dir != "" {
		dirs = append(dirs, dir)
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".lottostat", "plugins"))
	}

	return dirs
}

// FindPlugin returns the path of the lottostat-<command> binary, searching
// Dirs and then PATH.
func FindPlugin(command string) (string, error) {
	name := Prefix + command

	for _, dir := range Dirs() {
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%w: %s", ErrPluginNotFound, name)
}

// Streams are the standard streams handed to a plugin process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's own standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Execute runs a plugin and returns its exit code. A plugin that cannot be
// started yields 1.
func Execute(ctx context.Context, pluginPath string, args []string, streams Streams) int {
	cmd := exec.CommandContext(ctx, pluginPath, args...)
	cmd.Stdin = streams.In
	cmd.Stdout = streams.Out
	cmd.Stderr = streams.Err

	err := cmd.Run()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	fmt.Fprintf(streams.Err, "Error executing plugin: %v\n", err)
	return 1
}

// FormatNotFoundError explains where a plugin for command would be looked up.
func FormatNotFoundError(command string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "unknown command %q for \"lottostat\"\n", command)
	sb.WriteString("\nIf this is a plugin, install the binary as one of:\n")
	for _, dir := range Dirs() {
		fmt.Fprintf(&sb, "  - %s\n", filepath.Join(dir, Prefix+command))
	}
	fmt.Fprintf(&sb, "  - %s%s anywhere in your PATH\n", Prefix, command)
	sb.WriteString("\nRun 'lottostat --help' for usage.")

	return sb.String()
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}
