package session

import (
	"context"
	"os"
	"path/filepath"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/chandlerok/claudway/internal/system"
)

// UserShell returns the user's login shell, falling back to /bin/sh.
func UserShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// ActivateCmd builds the virtualenv activation line for the given
// shell. fish has its own activation script; everything else sources
// the POSIX one.
func ActivateCmd(userShell, venvDir string) string {
	script := filepath.Join(venvDir, "bin", "activate")
	if filepath.Base(userShell) == "fish" {
		script += ".fish"
	}
	return "source " + shellquote.Join(script)
}

// LaunchShell starts an interactive shell in dir with the activation
// command already applied. Each shell family needs its own mechanism:
// fish takes an init command flag, bash and sh read an rc file (fed on
// stdin so the user's own rc still runs first), and anything else gets
// an exec chain through -c.
func LaunchShell(ctx context.Context, exec system.CommandExecutor, userShell string, env []string, activate, dir string) error {
	switch filepath.Base(userShell) {
	case "fish":
		return exec.ExecuteInteractive(ctx, dir, env, userShell, "-C", activate)
	case "bash", "sh":
		rc := "[ -f ~/.bashrc ] && source ~/.bashrc; " + activate + "\n"
		return exec.ExecuteInteractiveWithInput(ctx, dir, env, rc, userShell, "--rcfile", "/dev/stdin")
	default:
		init := activate + "; exec " + shellquote.Join(userShell) + " -i"
		return exec.ExecuteInteractive(ctx, dir, env, userShell, "-c", init)
	}
}

// RunCommand executes a user-supplied command line through the user's
// shell in dir, attached to the terminal.
func RunCommand(ctx context.Context, exec system.CommandExecutor, userShell string, env []string, command, dir string) error {
	return exec.ExecuteInteractive(ctx, dir, env, userShell, "-c", command)
}
