// Package worktree implements the worktree lifecycle primitives: the
// deterministic naming scheme for persistent worktrees, classification
// of arbitrary paths against a repository, the sync filter applied to
// untracked files, and the create / destroy / list operations including
// conflict detection and recovery.
//
// The git worktree registry is the single source of truth for which
// paths are live worktrees; it is consulted fresh on every conflict
// check rather than cached, which is what makes concurrent invocations
// across processes safe.
package worktree
