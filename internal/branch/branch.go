// Package branch resolves a requested branch name to a local branch
// that a worktree can be created for, creating local or tracking
// branches on the way when needed.
package branch

import (
	"context"
	"fmt"
	"strings"

	"github.com/chandlerok/claudway/internal/errors"
	"github.com/chandlerok/claudway/internal/git"
	"github.com/chandlerok/claudway/internal/logging"
	"github.com/chandlerok/claudway/internal/prompt"
	"github.com/chandlerok/claudway/internal/tui"
)

// Resolver turns user-supplied branch names into checkout-ready local
// branches.
type Resolver struct {
	repo   string
	git    *git.Runner
	prompt prompt.Prompter

	// pick runs the interactive branch picker. Overridable in tests.
	pick func(local, remoteOnly []string) (tui.BranchResult, error)
}

// NewResolver returns a Resolver for the repository at repo.
func NewResolver(repo string, g *git.Runner, p prompt.Prompter) *Resolver {
	return &Resolver{
		repo:   repo,
		git:    g,
		prompt: p,
		pick:   tui.RunBranchPicker,
	}
}

// Resolve maps name to a local branch, in order of preference: an
// existing local branch, a new tracking branch for origin/<name>, or a
// brand-new branch after user confirmation, started from base (HEAD
// when base is empty). An "origin/" prefix on name is stripped first,
// so pasting a remote ref does the expected thing.
func (r *Resolver) Resolve(ctx context.Context, name, base string) (string, error) {
	name = strings.TrimPrefix(name, "origin/")
	if name == "" {
		return "", errors.ValidationError("branch name must not be empty")
	}

	if r.git.RefExists(ctx, r.repo, "refs/heads/"+name) {
		return name, nil
	}

	if r.git.RefExists(ctx, r.repo, "refs/remotes/origin/"+name) {
		logging.Debug("creating tracking branch", "branch", name)
		if err := r.git.CreateTrackingBranch(ctx, r.repo, name, "origin/"+name); err != nil {
			return "", errors.BranchError("track", err)
		}
		return name, nil
	}

	if !r.prompt.Confirm(fmt.Sprintf("Branch '%s' does not exist. Create it?", name), true) {
		return "", errors.UserDeclined()
	}
	if err := r.git.CreateBranch(ctx, r.repo, name, base); err != nil {
		return "", errors.BranchError("create", err)
	}
	return name, nil
}

// Pick interactively selects or names a branch, then resolves it with
// the given base ref. The picker offers the create entry first, then
// local branches, then origin-only ones; the create entry falls
// through to a plain text prompt when the picker cannot collect a name
// itself.
func (r *Resolver) Pick(ctx context.Context, base string) (string, error) {
	// The current branch is excluded: a worktree for it would always
	// conflict with the primary checkout.
	current := r.git.CurrentBranch(ctx, r.repo)
	local := subtract(r.git.LocalBranches(ctx, r.repo), []string{current})
	remoteOnly := subtract(r.git.RemoteBranches(ctx, r.repo), append(local, current))

	result, err := r.pick(local, remoteOnly)
	if err != nil {
		return "", errors.BranchError("pick", err)
	}

	switch result.Action {
	case tui.BranchSelected:
		return r.Resolve(ctx, result.Branch, base)
	case tui.BranchCreate:
		name := result.Branch
		if name == "" {
			name, err = r.prompt.Input("New branch name")
			if err != nil || name == "" {
				return "", errors.UserDeclined()
			}
		}
		return r.Resolve(ctx, name, base)
	default:
		return "", errors.UserDeclined()
	}
}

// subtract returns the elements of all not present in exclude,
// preserving order.
func subtract(all, exclude []string) []string {
	seen := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		seen[e] = struct{}{}
	}
	var out []string
	for _, a := range all {
		if _, ok := seen[a]; !ok {
			out = append(out, a)
		}
	}
	return out
}
