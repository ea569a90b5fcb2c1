package worktree

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/chandlerok/claudway/internal/config"
	"github.com/chandlerok/claudway/internal/errors"
	"github.com/chandlerok/claudway/internal/git"
	"github.com/chandlerok/claudway/internal/logging"
	"github.com/chandlerok/claudway/internal/system"
)

// Worktree is one entry from the repository's worktree registry.
type Worktree struct {
	Path   string
	Head   string
	Branch string // branch name, "(bare)" or "(detached)"
	Kind   Kind
}

// Manager performs worktree operations against one repository.
type Manager struct {
	repo  string
	git   *git.Runner
	exec  system.CommandExecutor
	paths *config.Paths
}

// NewManager returns a Manager for the repository at repo.
func NewManager(repo string, exec system.CommandExecutor, paths *config.Paths) *Manager {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &Manager{
		repo:  repo,
		git:   git.NewRunner(exec),
		exec:  exec,
		paths: paths,
	}
}

// Repo returns the primary repository root this manager operates on.
func (m *Manager) Repo() string {
	return m.repo
}

// Git exposes the underlying runner for callers that share it.
func (m *Manager) Git() *git.Runner {
	return m.git
}

// conflictSignatures are the known substrings of git's "branch is in
// use" failures. Matching message text is a fragile contract with the
// tool; anything unmatched degrades to an unrecoverable error reported
// verbatim rather than a guess.
var conflictSignatures = []string{
	"already checked out",
	"already used by worktree",
}

// addOutcome tags the result of a worktree-add attempt.
type addOutcome int

const (
	addOK addOutcome = iota
	addConflict
	addOther
)

func classifyAddFailure(output string) addOutcome {
	for _, sig := range conflictSignatures {
		if strings.Contains(output, sig) {
			return addConflict
		}
	}
	return addOther
}

// Create adds a worktree for branch at path. When the branch is already
// checked out elsewhere, the conflicting worktree is located and the
// confirm callback decides whether to remove it and retry once; confirm
// returning false aborts cleanly. A conflict whose path cannot be
// located is reported with the tool's message verbatim.
func (m *Manager) Create(ctx context.Context, path, branch string, confirm func(conflictPath string) bool) error {
	out, err := m.git.Run(ctx, m.repo, "worktree", "add", path, branch)
	if err == nil {
		return nil
	}

	if classifyAddFailure(out) != addConflict {
		return errors.WorktreeError("add", errors.New(errors.ExitGeneralError, out))
	}

	conflictPath := m.FindConflicting(ctx, branch)
	if conflictPath == "" {
		return errors.Conflict(out)
	}

	logging.Debug("worktree conflict", "branch", branch, "existing", conflictPath)
	if !confirm(conflictPath) {
		return errors.UserDeclined()
	}

	m.Destroy(ctx, conflictPath)

	out, err = m.git.Run(ctx, m.repo, "worktree", "add", path, branch)
	if err != nil {
		return errors.WorktreeError("add", errors.New(errors.ExitGeneralError, out))
	}
	return nil
}

// Destroy removes a worktree: best-effort unregistration followed by an
// unconditional recursive delete of whatever is left. Safe to call on a
// path that was never a worktree, and idempotent.
func (m *Manager) Destroy(ctx context.Context, path string) {
	if out, err := m.git.Run(ctx, m.repo, "worktree", "remove", "--force", path); err != nil {
		logging.Debug("worktree remove", "path", path, "output", out, "error", err)
	}
	if _, err := os.Lstat(path); err == nil {
		if err := os.RemoveAll(path); err != nil {
			logging.Debug("directory removal", "path", path, "error", err)
		}
	}
}

// FindConflicting returns the path of the worktree that has branch
// checked out, or empty when none can be located.
func (m *Manager) FindConflicting(ctx context.Context, branch string) string {
	out, err := m.git.Run(ctx, m.repo, "worktree", "list", "--porcelain")
	if err != nil {
		return ""
	}
	candidate := ""
	for _, line := range strings.Split(out, "\n") {
		if p, ok := strings.CutPrefix(line, "worktree "); ok {
			candidate = p
		} else if strings.HasPrefix(line, "branch ") && strings.HasSuffix(line, "/"+branch) {
			return candidate
		}
	}
	return ""
}

// List returns all registered worktrees in listing order, classified
// against this manager's paths. Listing failures yield an empty slice:
// this feeds display paths, not correctness-critical ones.
func (m *Manager) List(ctx context.Context) []Worktree {
	out, err := m.git.Run(ctx, m.repo, "worktree", "list", "--porcelain")
	if err != nil {
		logging.Debug("worktree listing failed", "error", err)
		return nil
	}
	return parseListing(out, m.repo, m.paths.PersistentRoot, m.paths.TempRoot)
}

// parseListing walks the porcelain block format: one field per line,
// blocks separated by blank lines. The accumulator resets on each
// block boundary.
func parseListing(text, repo, persistentRoot, tempRoot string) []Worktree {
	var (
		worktrees []Worktree
		current   Worktree
		open      bool
	)
	flush := func() {
		if open {
			if current.Branch == "" {
				current.Branch = "(detached)"
			}
			current.Kind = Classify(repo, current.Path, persistentRoot, tempRoot)
			worktrees = append(worktrees, current)
		}
		current = Worktree{}
		open = false
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			current.Path = strings.TrimPrefix(line, "worktree ")
			open = true
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "bare":
			current.Branch = "(bare)"
		case line == "detached":
			current.Branch = "(detached)"
		case line == "":
			flush()
		}
	}
	flush()
	return worktrees
}

// IsRegistered reports whether path appears as a worktree entry in the
// repository's registry. The registry is consulted fresh on every call;
// it is the single source of truth across processes.
func (m *Manager) IsRegistered(ctx context.Context, path string) bool {
	out, err := m.git.Run(ctx, m.repo, "worktree", "list", "--porcelain")
	if err != nil {
		return false
	}
	want := canonicalBestEffort(path)
	for _, line := range strings.Split(out, "\n") {
		if p, ok := strings.CutPrefix(line, "worktree "); ok {
			if canonicalBestEffort(p) == want {
				return true
			}
		}
	}
	return false
}

// SyncUntracked copies untracked files from the primary checkout into
// dest, subject to the policy. Copy failures are logged and swallowed:
// a partial sync is recoverable, an aborted session is not.
func (m *Manager) SyncUntracked(ctx context.Context, dest string, policy SyncPolicy) error {
	files, err := m.git.UntrackedFiles(ctx, m.repo)
	if err != nil {
		return err
	}
	kept := policy.Filter(files)
	if len(kept) == 0 {
		return nil
	}

	stdin := strings.Join(kept, "\n") + "\n"
	out, err := m.exec.ExecuteWithStdin(ctx, "", stdin,
		"rsync", "-a", "--files-from=-", m.repo+"/", dest+"/")
	if err != nil {
		logging.Warn("untracked file sync incomplete", "error", err, "output", strings.TrimSpace(string(out)))
	}
	return nil
}

// LinkDeps symlinks each repo-relative dependency directory into dest
// when it exists in the repo and is absent from the worktree. Links,
// never copies: dependency trees are large and must stay identical to
// the primary checkout.
func (m *Manager) LinkDeps(dest string, deps []string) {
	for _, rel := range deps {
		source, err := securejoin.SecureJoin(m.repo, rel)
		if err != nil {
			logging.Debug("skipping dependency link", "dep", rel, "error", err)
			continue
		}
		target, err := securejoin.SecureJoin(dest, rel)
		if err != nil {
			logging.Debug("skipping dependency link", "dep", rel, "error", err)
			continue
		}

		if _, err := os.Stat(source); err != nil {
			continue
		}
		if _, err := os.Lstat(target); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			logging.Warn("dependency link failed", "dep", rel, "error", err)
			continue
		}
		if err := os.Symlink(source, target); err != nil {
			logging.Warn("dependency link failed", "dep", rel, "error", err)
		}
	}
}
