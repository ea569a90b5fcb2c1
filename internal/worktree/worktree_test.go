package worktree

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chandlerok/claudway/internal/config"
	"github.com/chandlerok/claudway/internal/errors"
	"github.com/chandlerok/claudway/internal/system"
)

func testPaths(t *testing.T) (*config.Paths, string) {
	t.Helper()
	base := t.TempDir()
	paths := &config.Paths{
		ConfigDir:      filepath.Join(base, "config"),
		ConfigFile:     filepath.Join(base, "config", "config.toml"),
		PersistentRoot: filepath.Join(base, "worktrees"),
		TempRoot:       filepath.Join(base, "tmp"),
	}
	repo := filepath.Join(base, "repo")
	for _, dir := range []string{paths.PersistentRoot, paths.TempRoot, repo} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return paths, repo
}

func TestParseListing(t *testing.T) {
	paths, repo := testPaths(t)
	temp := filepath.Join(paths.TempRoot, config.TempPrefix+"ab12cd34")

	listing := strings.Join([]string{
		"worktree " + repo,
		"HEAD 1111111111111111111111111111111111111111",
		"branch refs/heads/main",
		"",
		"worktree " + temp,
		"HEAD 2222222222222222222222222222222222222222",
		"branch refs/heads/feature/login",
		"",
		"worktree " + filepath.Join(paths.TempRoot, "elsewhere"),
		"HEAD 3333333333333333333333333333333333333333",
		"detached",
	}, "\n")

	got := parseListing(listing, repo, paths.PersistentRoot, paths.TempRoot)
	if len(got) != 3 {
		t.Fatalf("expected 3 worktrees, got %d: %+v", len(got), got)
	}

	if got[0].Path != repo || got[0].Branch != "main" || got[0].Kind != KindPrimary {
		t.Errorf("first entry = %+v, want primary %s on main", got[0], repo)
	}
	if got[1].Path != temp || got[1].Branch != "feature/login" || got[1].Kind != KindTemporary {
		t.Errorf("second entry = %+v, want temporary %s on feature/login", got[1], temp)
	}
	if got[2].Branch != "(detached)" || got[2].Kind != KindUnrecognized {
		t.Errorf("third entry = %+v, want unrecognized detached", got[2])
	}
}

func TestCreate_ConflictResolvedAfterConfirm(t *testing.T) {
	paths, repo := testPaths(t)
	other := filepath.Join(paths.TempRoot, config.TempPrefix+"deadbeef")
	target := filepath.Join(paths.TempRoot, config.TempPrefix+"0badf00d")

	mock := system.NewMockExecutor()
	addPattern := "git -C " + repo + " worktree add"
	mock.AddResponse(addPattern,
		[]byte("fatal: 'feature' is already checked out at '"+other+"'"),
		errors.New(errors.ExitGeneralError, "exit status 128"))
	mock.AddResponse(addPattern, []byte("Preparing worktree"), nil)
	mock.AddResponse("git -C "+repo+" worktree list --porcelain",
		[]byte("worktree "+repo+"\nHEAD 1111\nbranch refs/heads/main\n\nworktree "+other+"\nHEAD 2222\nbranch refs/heads/feature\n"), nil)
	mock.AddResponse("git -C "+repo+" worktree remove", nil, nil)

	m := NewManager(repo, mock, paths)

	var asked string
	err := m.Create(context.Background(), target, "feature", func(conflictPath string) bool {
		asked = conflictPath
		return true
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if asked != other {
		t.Errorf("confirm saw %q, want %q", asked, other)
	}

	lines := mock.CommandLines()
	var adds, removes int
	for _, l := range lines {
		if strings.Contains(l, "worktree add") {
			adds++
		}
		if strings.Contains(l, "worktree remove --force "+other) {
			removes++
		}
	}
	if adds != 2 {
		t.Errorf("expected add to be retried once, saw %d attempts:\n%s", adds, strings.Join(lines, "\n"))
	}
	if removes != 1 {
		t.Errorf("expected conflicting worktree to be removed, commands:\n%s", strings.Join(lines, "\n"))
	}
}

func TestCreate_ConflictDeclined(t *testing.T) {
	paths, repo := testPaths(t)
	other := filepath.Join(paths.TempRoot, config.TempPrefix+"deadbeef")

	mock := system.NewMockExecutor()
	mock.AddResponse("git -C "+repo+" worktree add",
		[]byte("fatal: 'feature' is already used by worktree at '"+other+"'"),
		errors.New(errors.ExitGeneralError, "exit status 128"))
	mock.AddResponse("git -C "+repo+" worktree list --porcelain",
		[]byte("worktree "+other+"\nHEAD 2222\nbranch refs/heads/feature\n"), nil)

	m := NewManager(repo, mock, paths)
	err := m.Create(context.Background(), filepath.Join(paths.TempRoot, "x"), "feature",
		func(string) bool { return false })

	if !errors.IsUserDeclined(err) {
		t.Fatalf("expected user-declined error, got %v", err)
	}
	for _, l := range mock.CommandLines() {
		if strings.Contains(l, "worktree remove") {
			t.Errorf("declined conflict must not remove anything, ran: %s", l)
		}
	}
}

func TestCreate_ConflictWithoutListingEntry(t *testing.T) {
	paths, repo := testPaths(t)

	gitMsg := "fatal: 'feature' is already checked out at '/gone'"
	mock := system.NewMockExecutor()
	mock.AddResponse("git -C "+repo+" worktree add", []byte(gitMsg),
		errors.New(errors.ExitGeneralError, "exit status 128"))
	mock.AddResponse("git -C "+repo+" worktree list --porcelain",
		[]byte("worktree "+repo+"\nHEAD 1111\nbranch refs/heads/main\n"), nil)

	m := NewManager(repo, mock, paths)
	err := m.Create(context.Background(), filepath.Join(paths.TempRoot, "x"), "feature",
		func(string) bool {
			t.Fatal("confirm must not be called when the conflict cannot be located")
			return false
		})

	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), gitMsg) {
		t.Errorf("error %q should carry the tool message %q", err, gitMsg)
	}
	if errors.GetExitCode(err) != errors.ExitGeneralError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitGeneralError)
	}
}

func TestCreate_NonConflictFailure(t *testing.T) {
	paths, repo := testPaths(t)

	mock := system.NewMockExecutor()
	mock.AddResponse("git -C "+repo+" worktree add",
		[]byte("fatal: could not create work tree dir: Permission denied"),
		errors.New(errors.ExitGeneralError, "exit status 128"))

	m := NewManager(repo, mock, paths)
	err := m.Create(context.Background(), filepath.Join(paths.TempRoot, "x"), "feature",
		func(string) bool { return true })

	if err == nil {
		t.Fatal("expected error")
	}
	if errors.IsUserDeclined(err) {
		t.Error("a permission failure is not a declined prompt")
	}
	if len(mock.CommandLines()) != 1 {
		t.Errorf("non-conflict failure must not trigger listing or retry, ran:\n%s",
			strings.Join(mock.CommandLines(), "\n"))
	}
}

func TestDestroy_Idempotent(t *testing.T) {
	paths, repo := testPaths(t)
	victim := filepath.Join(paths.TempRoot, config.TempPrefix+"deadbeef")
	if err := os.MkdirAll(filepath.Join(victim, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	mock := system.NewMockExecutor()
	mock.AddResponse("git -C "+repo+" worktree remove",
		[]byte("fatal: validation failed"),
		errors.New(errors.ExitGeneralError, "exit status 128"))

	m := NewManager(repo, mock, paths)
	m.Destroy(context.Background(), victim)
	if _, err := os.Lstat(victim); !os.IsNotExist(err) {
		t.Fatalf("directory still present after destroy: %v", err)
	}

	// A second pass over an already-gone path must be a no-op.
	m.Destroy(context.Background(), victim)
}

func TestIsRegistered(t *testing.T) {
	paths, repo := testPaths(t)
	registered := filepath.Join(paths.TempRoot, config.TempPrefix+"cafe0001")

	mock := system.NewMockExecutor()
	mock.AddResponse("git -C "+repo+" worktree list --porcelain",
		[]byte("worktree "+repo+"\nHEAD 1111\nbranch refs/heads/main\n\nworktree "+registered+"\nHEAD 2222\nbranch refs/heads/feature\n"), nil)
	mock.AddResponse("git -C "+repo+" worktree list --porcelain",
		[]byte("worktree "+repo+"\nHEAD 1111\nbranch refs/heads/main\n\nworktree "+registered+"\nHEAD 2222\nbranch refs/heads/feature\n"), nil)

	m := NewManager(repo, mock, paths)
	if !m.IsRegistered(context.Background(), registered) {
		t.Error("registered path not found in listing")
	}
	if m.IsRegistered(context.Background(), filepath.Join(paths.TempRoot, "other")) {
		t.Error("unregistered path reported as registered")
	}
}

func TestSyncUntracked_FiltersAndInvokesRsync(t *testing.T) {
	paths, repo := testPaths(t)
	dest := filepath.Join(paths.TempRoot, config.TempPrefix+"cafe0002")

	mock := system.NewMockExecutor()
	mock.AddResponse("git -C "+repo+" ls-files --others",
		[]byte("notes.txt\nweb/node_modules/pkg/index.js\n.env\nbuild/out.bin\ndocs/draft.md\n"), nil)

	m := NewManager(repo, mock, paths)
	if err := m.SyncUntracked(context.Background(), dest, DefaultSyncPolicy()); err != nil {
		t.Fatalf("SyncUntracked: %v", err)
	}

	var rsync *system.MockCommand
	for i := range mock.Commands {
		if mock.Commands[i].Name == "rsync" {
			rsync = &mock.Commands[i]
		}
	}
	if rsync == nil {
		t.Fatal("rsync was not invoked")
	}

	wantArgs := []string{"-a", "--files-from=-", repo + "/", dest + "/"}
	if len(rsync.Args) != len(wantArgs) {
		t.Fatalf("rsync args = %v, want %v", rsync.Args, wantArgs)
	}
	for i, a := range wantArgs {
		if rsync.Args[i] != a {
			t.Fatalf("rsync args = %v, want %v", rsync.Args, wantArgs)
		}
	}

	sent := strings.Split(strings.TrimSuffix(rsync.Stdin, "\n"), "\n")
	want := []string{"notes.txt", ".env", "docs/draft.md"}
	if len(sent) != len(want) {
		t.Fatalf("synced files = %v, want %v", sent, want)
	}
	for i, f := range want {
		if sent[i] != f {
			t.Errorf("synced files = %v, want %v", sent, want)
			break
		}
	}
}

func TestSyncUntracked_NothingToCopy(t *testing.T) {
	paths, repo := testPaths(t)

	mock := system.NewMockExecutor()
	mock.AddResponse("git -C "+repo+" ls-files --others",
		[]byte("web/node_modules/pkg/index.js\ndist/bundle.js\ndata.sqlite3\n"), nil)

	m := NewManager(repo, mock, paths)
	if err := m.SyncUntracked(context.Background(), "/dev/null", DefaultSyncPolicy()); err != nil {
		t.Fatalf("SyncUntracked: %v", err)
	}
	for _, c := range mock.Commands {
		if c.Name == "rsync" {
			t.Error("rsync invoked with an empty file list")
		}
	}
}

func TestLinkDeps(t *testing.T) {
	paths, repo := testPaths(t)
	dest := filepath.Join(paths.TempRoot, config.TempPrefix+"cafe0003")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	// Present in the repo, absent from the worktree: must be linked.
	if err := os.MkdirAll(filepath.Join(repo, "web", "node_modules"), 0755); err != nil {
		t.Fatal(err)
	}
	// Already present in the worktree: must be left alone.
	if err := os.MkdirAll(filepath.Join(repo, "mamba", "venv"), 0755); err != nil {
		t.Fatal(err)
	}
	existing := filepath.Join(dest, "mamba", "venv")
	if err := os.MkdirAll(existing, 0755); err != nil {
		t.Fatal(err)
	}

	m := NewManager(repo, system.NewMockExecutor(), paths)
	m.LinkDeps(dest, []string{"web/node_modules", "mamba/venv", "missing/dir"})

	linked := filepath.Join(dest, "web", "node_modules")
	fi, err := os.Lstat(linked)
	if err != nil {
		t.Fatalf("expected symlink at %s: %v", linked, err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		t.Errorf("%s is not a symlink", linked)
	}
	if target, _ := os.Readlink(linked); target != filepath.Join(repo, "web", "node_modules") {
		t.Errorf("symlink points at %q", target)
	}

	if fi, err := os.Lstat(existing); err != nil || fi.Mode()&os.ModeSymlink != 0 {
		t.Errorf("pre-existing directory was replaced: %v %v", fi, err)
	}
	if _, err := os.Lstat(filepath.Join(dest, "missing", "dir")); !os.IsNotExist(err) {
		t.Errorf("dependency absent from the repo must not be linked")
	}
}
