package worktree

import (
	"reflect"
	"testing"
)

func TestShouldSync(t *testing.T) {
	policy := DefaultSyncPolicy()

	tests := []struct {
		path string
		want bool
	}{
		{"notes.txt", true},
		{"src/main.go", true},
		{"docs/design.md", true},
		{"node_modules/pkg.js", false},
		{"web/node_modules/pkg.js", false}, // nested prefix still excluded
		{"deep/in/tree/__pycache__/mod.cpython-312.pyc", false},
		{".venv/bin/python", false},
		{"dist/bundle.js", false},
		{"coverage/lcov.info", false},
		{".DS_Store", false},
		{"sub/dir/.DS_Store", false},
		{".coverage", false},
		{"data/app.sqlite3", false},
		{"data/app.db", false},
		{"pkg/mod.pyc", false},
		{"distributed/notes.txt", true}, // "dist/" matches "dist/" only as a segment substring
		{"mydb.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := policy.ShouldSync(tt.path); got != tt.want {
				t.Errorf("ShouldSync(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestShouldSync_EmptyPolicyAcceptsEverything(t *testing.T) {
	var policy SyncPolicy
	for _, path := range []string{"node_modules/pkg.js", ".DS_Store", "x.pyc"} {
		if !policy.ShouldSync(path) {
			t.Errorf("empty policy should accept %q", path)
		}
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	policy := DefaultSyncPolicy()
	in := []string{"b.txt", "node_modules/x.js", "a.txt", ".DS_Store", "c.txt"}

	got := policy.Filter(in)
	want := []string{"b.txt", "a.txt", "c.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %v, want %v", got, want)
	}
}
