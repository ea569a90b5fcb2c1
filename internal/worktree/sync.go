package worktree

import "strings"

// SyncPolicy decides which untracked files are copied into a fresh
// worktree. Large regenerable trees and transient editor/OS files are
// skipped so creation stays fast and dependency directories (which are
// symlinked separately) are not duplicated.
type SyncPolicy struct {
	// SkipPrefixes exclude a path when they occur anywhere in it, not
	// just at the start: a nested node_modules/ is still excluded.
	SkipPrefixes []string

	// SkipNames exclude by exact final path component.
	SkipNames []string

	// SkipSuffixes exclude by final-component suffix.
	SkipSuffixes []string
}

// DefaultSyncPolicy returns the built-in exclusion set.
func DefaultSyncPolicy() SyncPolicy {
	return SyncPolicy{
		SkipPrefixes: []string{
			"node_modules/",
			".venv/",
			"venv/",
			"__pycache__/",
			".next/",
			".turbo/",
			".nuxt/",
			".cache/",
			"dist/",
			"build/",
			"coverage/",
		},
		SkipNames:    []string{".DS_Store", ".coverage"},
		SkipSuffixes: []string{".sqlite3", ".db", ".pyc"},
	}
}

// ShouldSync reports whether the untracked file at rel (a /-separated
// repo-relative path) should be copied into the worktree. Pure; no I/O.
func (p SyncPolicy) ShouldSync(rel string) bool {
	for _, prefix := range p.SkipPrefixes {
		if strings.Contains(rel, prefix) {
			return false
		}
	}

	name := rel
	if idx := strings.LastIndex(rel, "/"); idx >= 0 {
		name = rel[idx+1:]
	}
	for _, skip := range p.SkipNames {
		if name == skip {
			return false
		}
	}
	for _, suffix := range p.SkipSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return true
}

// Filter returns the subset of rels accepted by the policy, preserving
// order.
func (p SyncPolicy) Filter(rels []string) []string {
	var kept []string
	for _, rel := range rels {
		if p.ShouldSync(rel) {
			kept = append(kept, rel)
		}
	}
	return kept
}
