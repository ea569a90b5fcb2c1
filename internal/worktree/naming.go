package worktree

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chandlerok/claudway/internal/config"
)

// Kind classifies a worktree relative to its repository.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindPrimary
	KindPersistent
	KindTemporary
)

func (k Kind) String() string {
	switch k {
	case KindPrimary:
		return "main"
	case KindPersistent:
		return "persistent"
	case KindTemporary:
		return "temporary"
	default:
		return "unknown"
	}
}

// fingerprintLen is the number of hex characters appended to a
// persistent worktree name.
const fingerprintLen = 8

// PersistentPath returns the deterministic location of the persistent
// worktree for a branch in a repo. The branch name is sanitized for use
// as a single path component and suffixed with a short hash of
// branch+repo, so equally named branches of different repositories do
// not collide.
func PersistentPath(persistentRoot, repo, branch string) string {
	sanitized := strings.NewReplacer("/", "-", "\\", "-").Replace(branch)
	sum := sha256.Sum256([]byte(branch + ":" + repo))
	fingerprint := fmt.Sprintf("%x", sum)[:fingerprintLen]
	return filepath.Join(persistentRoot, sanitized+"-"+fingerprint)
}

// Classify determines what kind of worktree candidate is for repo.
// Both sides are resolved to canonical absolute form first; resolution
// failures never propagate, they conservatively rule out the primary
// match and the comparison continues on the cleaned path.
func Classify(repo, candidate, persistentRoot, tempRoot string) Kind {
	repoResolved, repoOK := canonical(repo)
	candResolved, candOK := canonical(candidate)

	if repoOK && candOK && repoResolved == candResolved {
		return KindPrimary
	}
	if isUnder(candResolved, canonicalBestEffort(persistentRoot)) {
		return KindPersistent
	}
	if tempRel, ok := relUnder(candResolved, canonicalBestEffort(tempRoot)); ok {
		for _, part := range strings.Split(tempRel, string(filepath.Separator)) {
			if strings.HasPrefix(part, config.TempPrefix) {
				return KindTemporary
			}
		}
	}
	return KindUnrecognized
}

// canonical resolves symlinks and relative segments. The boolean is
// false when full resolution failed and the cleaned absolute form was
// used instead.
func canonical(path string) (string, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return canonicalBestEffort(path), false
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return filepath.Clean(resolved), false
	}
	return abs, true
}

func canonicalBestEffort(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func isUnder(path, root string) bool {
	_, ok := relUnder(path, root)
	return ok
}

func relUnder(path, root string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
