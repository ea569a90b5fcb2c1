// Package git wraps the git invocations cw depends on behind a small
// runner so tests can script them through a mock executor.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chandlerok/claudway/internal/logging"
	"github.com/chandlerok/claudway/internal/system"
)

// Runner executes git against a repository through a CommandExecutor.
type Runner struct {
	exec system.CommandExecutor
}

// NewRunner returns a Runner backed by the given executor, or the
// process-wide default when exec is nil.
func NewRunner(exec system.CommandExecutor) *Runner {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &Runner{exec: exec}
}

// Run invokes git -C repo with the given arguments and returns its
// combined output. The output is returned even on failure so callers
// can classify the tool's message.
func (r *Runner) Run(ctx context.Context, repo string, args ...string) (string, error) {
	full := append([]string{"-C", repo}, args...)
	out, err := r.exec.Execute(ctx, "", "git", full...)
	output := strings.TrimSpace(string(out))
	if err != nil {
		return output, fmt.Errorf("git %s: %w", args[0], err)
	}
	return output, nil
}

// DetectRepo returns the root of the primary repository for dir, even
// when dir is inside a worktree. Empty string when not in a repository.
func (r *Runner) DetectRepo(ctx context.Context, dir string) string {
	out, err := r.exec.Execute(ctx, dir, "git", "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return ""
	}
	commonDir := strings.TrimSpace(string(out))
	if commonDir == "" {
		return ""
	}
	// The common dir is the .git directory; its parent is the repo root.
	return filepath.Dir(commonDir)
}

// RefExists reports whether a ref resolves in the repository.
func (r *Runner) RefExists(ctx context.Context, repo, ref string) bool {
	_, err := r.Run(ctx, repo, "rev-parse", "--verify", ref)
	return err == nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when it
// cannot be determined (detached or error).
func (r *Runner) CurrentBranch(ctx context.Context, repo string) string {
	out, err := r.Run(ctx, repo, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil || out == "" {
		return "HEAD"
	}
	return out
}

// StatusPorcelain returns porcelain status output for a working tree.
// Empty output means clean.
func (r *Runner) StatusPorcelain(ctx context.Context, path string) string {
	out, err := r.Run(ctx, path, "status", "--porcelain", "-unormal")
	if err != nil {
		logging.Debug("status query failed", "path", path, "error", err)
		return ""
	}
	return out
}

// UntrackedFiles lists files not tracked by git, relative to the repo root.
func (r *Runner) UntrackedFiles(ctx context.Context, repo string) ([]string, error) {
	out, err := r.Run(ctx, repo, "ls-files", "--others")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// LocalBranches returns local branch names, most recently committed first.
func (r *Runner) LocalBranches(ctx context.Context, repo string) []string {
	out, err := r.Run(ctx, repo, "branch", "--sort=-committerdate", "--format=%(refname:short)")
	if err != nil {
		return nil
	}
	var branches []string
	for _, b := range strings.Split(out, "\n") {
		if b != "" {
			branches = append(branches, b)
		}
	}
	return branches
}

// RemoteBranches returns origin branch names without the remote prefix,
// most recently committed first. HEAD pointers and other remotes are
// skipped: tracking setup elsewhere assumes origin.
func (r *Runner) RemoteBranches(ctx context.Context, repo string) []string {
	out, err := r.Run(ctx, repo, "branch", "-r", "--sort=-committerdate", "--format=%(refname:short)")
	if err != nil {
		return nil
	}
	var branches []string
	for _, b := range strings.Split(out, "\n") {
		if b == "" || strings.Contains(b, "/HEAD") {
			continue
		}
		name, ok := strings.CutPrefix(b, "origin/")
		if !ok || name == "" {
			continue
		}
		branches = append(branches, name)
	}
	return branches
}

// CreateBranch creates a local branch, optionally from a base ref.
func (r *Runner) CreateBranch(ctx context.Context, repo, name, base string) error {
	args := []string{"branch", name}
	if base != "" {
		args = append(args, base)
	}
	out, err := r.Run(ctx, repo, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}
	return nil
}

// CreateTrackingBranch creates a local branch tracking a remote ref.
func (r *Runner) CreateTrackingBranch(ctx context.Context, repo, name, remoteRef string) error {
	out, err := r.Run(ctx, repo, "branch", "--track", name, remoteRef)
	if err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}
	return nil
}
