package cmd

import (
	"context"

	"github.com/chandlerok/claudway/internal/config"
	"github.com/chandlerok/claudway/internal/errors"
	"github.com/chandlerok/claudway/internal/git"
	"github.com/chandlerok/claudway/internal/worktree"
)

// appPaths is the path layout shared by every command.
var appPaths = config.DefaultPaths()

// loadConfig reads the user configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(appPaths)
}

// requireRepo detects the primary repository from the working
// directory, even inside a worktree.
func requireRepo(ctx context.Context) (string, error) {
	repo := git.NewRunner(nil).DetectRepo(ctx, "")
	if repo == "" {
		return "", errors.NotARepository()
	}
	return repo, nil
}

// resolveRepo detects the repository like requireRepo, falling back to
// the configured default repo for commands that can run from anywhere.
func resolveRepo(ctx context.Context, cfg *config.Config) (string, error) {
	if repo := git.NewRunner(nil).DetectRepo(ctx, ""); repo != "" {
		return repo, nil
	}
	if cfg.DefaultRepo != "" {
		return config.ValidateRepoPath(cfg.DefaultRepo)
	}
	return "", errors.RepoNotConfigured()
}

// newManager builds a worktree manager on the real executor.
func newManager(repo string) *worktree.Manager {
	return worktree.NewManager(repo, nil, appPaths)
}

// filterWorktrees returns the listed worktrees matching any of the
// given kinds, preserving order.
func filterWorktrees(worktrees []worktree.Worktree, kinds ...worktree.Kind) []worktree.Worktree {
	var out []worktree.Worktree
	for _, wt := range worktrees {
		for _, k := range kinds {
			if wt.Kind == k {
				out = append(out, wt)
				break
			}
		}
	}
	return out
}

// findByBranch returns the worktree checked out on branch, if any.
func findByBranch(worktrees []worktree.Worktree, branch string) (worktree.Worktree, bool) {
	for _, wt := range worktrees {
		if wt.Branch == branch {
			return wt, true
		}
	}
	return worktree.Worktree{}, false
}
