package session

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chandlerok/claudway/internal/logging"
)

// summaryLimit caps how many changed files the guard lists before
// collapsing the rest into a count.
const summaryLimit = 15

var (
	modifiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	deletedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	untrackedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	plainStyle     = lipgloss.NewStyle()
)

func statusStyle(code string) lipgloss.Style {
	switch code {
	case "M":
		return modifiedStyle
	case "A":
		return addedStyle
	case "D":
		return deletedStyle
	case "??":
		return untrackedStyle
	default:
		return plainStyle
	}
}

// guardUncommitted warns about uncommitted work in a temporary worktree
// that is about to be destroyed and offers to re-enter the shell until
// the tree is clean or the user lets the changes go. Only meaningful on
// a terminal; headless runs fall straight through to destruction.
func (s *Session) guardUncommitted(ctx context.Context, userShell string, env []string, activate string) {
	if !s.interactive() {
		return
	}
	if _, err := os.Stat(s.path); err != nil {
		return
	}

	for {
		changes := s.manager.Git().StatusPorcelain(ctx, s.path)
		if changes == "" {
			return
		}

		fmt.Println()
		logging.UserWarning("Uncommitted changes")
		logging.UserDim("These will be lost when the worktree is removed.")
		fmt.Println()
		printChangeSummary(changes)

		if !s.confirmReturn() {
			return
		}
		logging.UserDim("Returning to shell. Type 'exit' when done.")
		fmt.Println()
		if err := LaunchShell(ctx, s.exec, userShell, env, activate, s.path); err != nil {
			logging.Debug("guard shell failed", "error", err)
			return
		}
	}
}

// confirmReturn asks whether to re-enter the shell. An interrupt
// arriving while the prompt is open counts as a decline, so cleanup
// still runs instead of the worktree being orphaned.
func (s *Session) confirmReturn() bool {
	if s.sig == nil {
		return s.prompt.Confirm("Return to shell to stash/stage/commit?", true)
	}

	answer := make(chan bool, 1)
	go func() {
		answer <- s.prompt.Confirm("Return to shell to stash/stage/commit?", true)
	}()
	select {
	case ok := <-answer:
		return ok
	case <-s.sig:
		fmt.Println()
		return false
	}
}

// printChangeSummary renders a short colored listing of porcelain
// status output.
func printChangeSummary(changes string) {
	lines := strings.Split(changes, "\n")
	for i, line := range lines {
		if i == summaryLimit {
			logging.UserDim("  ... and %d more", len(lines)-summaryLimit)
			break
		}
		code, name, _ := strings.Cut(strings.TrimSpace(line), " ")
		name = strings.TrimSpace(name)
		fmt.Printf("  %s %s\n", statusStyle(code).Render(code), name)
	}
	fmt.Println()
}
