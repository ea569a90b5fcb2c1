// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
)

// CommandExecutor abstracts command execution for testability.
// Every method takes the working directory for the child process;
// an empty dir means "inherit the current directory".
type CommandExecutor interface {
	// Execute runs a command and returns its combined output.
	Execute(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

	// ExecuteWithStdin runs a command with the given stdin and returns output.
	ExecuteWithStdin(ctx context.Context, dir, stdin string, name string, args ...string) ([]byte, error)

	// ExecuteInteractive runs a command with stdin/stdout/stderr connected
	// to the terminal and the given environment (nil means inherit).
	ExecuteInteractive(ctx context.Context, dir string, env []string, name string, args ...string) error

	// ExecuteInteractiveWithInput runs a command attached to the terminal's
	// stdout/stderr, feeding the given string as its stdin. Used for shells
	// started with an rc file on /dev/stdin.
	ExecuteInteractiveWithInput(ctx context.Context, dir string, env []string, input string, name string, args ...string) error
}

// defaultExecutor is the real OS implementation.
var defaultExecutor CommandExecutor = &osExecutor{}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultExecutor = &osExecutor{}
}
