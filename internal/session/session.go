// Package session orchestrates one cw invocation: provision a
// worktree, populate it, hand the terminal to the agent and the user's
// shell, and tear the worktree down again on every exit path.
package session

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"github.com/chandlerok/claudway/internal/config"
	"github.com/chandlerok/claudway/internal/errors"
	"github.com/chandlerok/claudway/internal/logging"
	"github.com/chandlerok/claudway/internal/prompt"
	"github.com/chandlerok/claudway/internal/system"
	"github.com/chandlerok/claudway/internal/worktree"
)

// Options selects what one session does.
type Options struct {
	// Branch is the resolved local branch to check out.
	Branch string

	// Command is the agent command line; empty skips the agent.
	Command string

	// ShellOnly drops straight into a shell without running the agent.
	ShellOnly bool

	// Persistent uses the deterministic reusable worktree path instead
	// of a throwaway temp directory.
	Persistent bool
}

// Session is a single provision-work-teardown cycle. It owns the
// temporary worktree directory it creates; persistent worktrees are
// shared property and are left in place.
type Session struct {
	opts    Options
	manager *worktree.Manager
	cfg     *config.Config
	paths   *config.Paths
	exec    system.CommandExecutor
	prompt  prompt.Prompter

	path   string
	reused bool
	sig    chan os.Signal

	// mu guards shelled and cleaned, which are touched by both the
	// main goroutine and the signal handler. It is held for the whole
	// of finalize so the teardown runs exactly once and a concurrent
	// trigger blocks until it is done instead of racing past it.
	mu      sync.Mutex
	shelled bool
	cleaned bool

	// Overridable in tests.
	interactive func() bool
	exit        func(int)
}

// New assembles a Session from its collaborators.
func New(manager *worktree.Manager, cfg *config.Config, paths *config.Paths, exec system.CommandExecutor, p prompt.Prompter, opts Options) *Session {
	return &Session{
		opts:        opts,
		manager:     manager,
		cfg:         cfg,
		paths:       paths,
		exec:        exec,
		prompt:      p,
		interactive: prompt.IsInteractive,
		exit:        os.Exit,
	}
}

// Path returns the worktree directory once provisioned.
func (s *Session) Path() string {
	return s.path
}

// Run drives the full lifecycle. On return the temporary worktree is
// gone; a persistent one stays for the next invocation.
func (s *Session) Run(ctx context.Context) error {
	if err := s.provision(ctx); err != nil {
		return err
	}
	userShell := UserShell()
	env := system.SandboxEnviron()
	activate := ActivateCmd(userShell, filepath.Join(s.path, s.cfg.VenvDir))

	// A signal during the session runs the same teardown as a normal
	// exit, then leaves with the conventional code. The notify stays
	// installed through finalize itself: an interrupt at the guard
	// prompt must surface as a declined answer, not kill the process
	// with the worktree still on disk.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	s.sig = sigCh
	done := make(chan struct{})
	go func() {
		select {
		case <-done:
		case sig := <-sigCh:
			s.finalize(context.Background(), userShell, env, activate)
			s.exit(errors.SignalExitCode(sig))
		}
	}()
	defer func() {
		close(done)
		s.finalize(ctx, userShell, env, activate)
		signal.Stop(sigCh)
	}()

	if !s.reused {
		if err := s.manager.SyncUntracked(ctx, s.path, worktree.DefaultSyncPolicy()); err != nil {
			return err
		}
		logging.UserSuccess("Untracked files synced")

		s.manager.LinkDeps(s.path, s.cfg.DepSymlinks)
		logging.UserSuccess("Dependencies linked")

		s.trustMise(ctx)
	}

	fmt.Println()
	logging.UserBold("Worktree ready!")
	logging.UserDim("%s", s.path)
	logging.UserDim("Branch: %s", s.opts.Branch)
	fmt.Println()

	if !s.opts.ShellOnly && s.opts.Command != "" {
		logging.UserInfo("Launching: %s", s.opts.Command)
		fmt.Println()
		if err := RunCommand(ctx, s.exec, userShell, env, s.opts.Command, s.path); err != nil {
			logging.Debug("agent command exited with error", "error", err)
		}
	}

	logging.UserDim("Dropping into shell. Type 'exit' to clean up.")
	fmt.Println()

	s.mu.Lock()
	s.shelled = true
	s.mu.Unlock()
	if err := LaunchShell(ctx, s.exec, userShell, env, activate, s.path); err != nil {
		logging.Debug("shell exited with error", "error", err)
	}
	return nil
}

// provision places the worktree: a fresh unique temp directory, or the
// deterministic persistent path with reuse and orphan handling.
func (s *Session) provision(ctx context.Context) error {
	if !s.opts.Persistent {
		s.path = s.freshTempPath()
		return s.create(ctx)
	}

	s.path = worktree.PersistentPath(s.paths.PersistentRoot, s.manager.Repo(), s.opts.Branch)

	if _, err := os.Stat(s.path); err == nil {
		if s.manager.IsRegistered(ctx, s.path) {
			s.reused = true
			logging.UserInfo("Reusing persistent worktree for %s", s.opts.Branch)
			return nil
		}
		// Directory exists but git does not know it: a leftover from a
		// crashed run or a manual copy. Recreate from scratch.
		logging.UserWarning("Discarding unregistered directory at %s", s.path)
		s.manager.Destroy(ctx, s.path)
	}
	return s.create(ctx)
}

func (s *Session) create(ctx context.Context) error {
	err := s.manager.Create(ctx, s.path, s.opts.Branch, s.confirmConflict)
	if err != nil {
		return err
	}
	logging.UserSuccess("Worktree created for %s", s.opts.Branch)
	return nil
}

// confirmConflict decides whether the worktree holding the branch
// elsewhere may be removed. Without a terminal the answer is always no.
func (s *Session) confirmConflict(conflictPath string) bool {
	if !s.interactive() {
		return false
	}
	logging.UserWarning("Branch '%s' is already checked out at:", s.opts.Branch)
	fmt.Printf("  %s\n", conflictPath)
	return s.prompt.Confirm("Remove the existing worktree?", true)
}

// freshTempPath generates an unused cw- directory name under the temp
// root. The directory must not exist yet; git worktree add creates it.
func (s *Session) freshTempPath() string {
	for {
		name := config.TempPrefix + uuid.New().String()[:8]
		path := filepath.Join(s.paths.TempRoot, name)
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			return path
		}
	}
}

// trustMise marks the worktree's mise config as trusted so the tool
// does not prompt inside the fresh directory. Best effort.
func (s *Session) trustMise(ctx context.Context) {
	if _, err := os.Stat(filepath.Join(s.path, "mise.toml")); err != nil {
		return
	}
	if _, err := s.exec.Execute(ctx, s.path, "mise", "trust"); err != nil {
		logging.Debug("mise trust failed", "error", err)
	}
}

// finalize tears the session down exactly once, from whichever exit
// path gets there first. Persistent worktrees are left alone. The
// mutex is held for the full teardown, so a second trigger waits for
// the first to finish and then returns without acting.
func (s *Session) finalize(ctx context.Context, userShell string, env []string, activate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cleaned {
		return
	}
	s.cleaned = true
	if s.opts.Persistent {
		return
	}

	if s.shelled {
		s.guardUncommitted(ctx, userShell, env, activate)
	}

	fmt.Println()
	logging.UserWarning("Cleaning up worktree ...")
	s.manager.Destroy(ctx, s.path)
	logging.UserSuccess("Done.")
}
