package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chandlerok/claudway/internal/errors"
	"github.com/chandlerok/claudway/internal/prompt"
	"github.com/chandlerok/claudway/internal/session"
	"github.com/chandlerok/claudway/internal/system"
	"github.com/chandlerok/claudway/internal/tui"
	"github.com/chandlerok/claudway/internal/worktree"
)

var switchCmd = &cobra.Command{
	Use:   "switch [name]",
	Short: "Open a shell in an existing worktree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSwitch,
}

func init() {
	rootCmd.AddCommand(switchCmd)
}

func runSwitch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := requireRepo(ctx)
	if err != nil {
		return err
	}
	manager := newManager(repo)

	switchable := filterWorktrees(manager.List(ctx),
		worktree.KindPrimary, worktree.KindPersistent, worktree.KindTemporary)
	if len(switchable) == 0 {
		logWarning("No worktrees found.")
		logDim("Create one with: cw go <branch>")
		return errors.ValidationError("no worktrees found")
	}

	var selected worktree.Worktree
	switch {
	case len(args) == 1:
		var ok bool
		if selected, ok = findByBranch(switchable, args[0]); !ok {
			logWarning("No worktree found for branch '%s'.", args[0])
			logDim("Available worktrees:")
			for _, wt := range switchable {
				fmt.Printf("  %s  (%s)\n", wt.Branch, wt.Kind)
			}
			return errors.ValidationError(fmt.Sprintf("no worktree for branch '%s'", args[0]))
		}

	case prompt.IsInteractive():
		result, err := tui.RunWorktreePicker("cw - Switch Worktree", switchable)
		if err != nil {
			return err
		}
		if result.Action != tui.WorktreeSelected {
			return errors.UserDeclined()
		}
		selected = result.Worktree

	default:
		return errors.ValidationError("no TTY, pass a branch name")
	}

	if _, err := os.Stat(selected.Path); err != nil {
		return errors.ValidationError(fmt.Sprintf("worktree directory does not exist: %s", selected.Path))
	}

	if selected.Kind == worktree.KindTemporary {
		fmt.Println()
		logWarning("This is a temporary worktree. It will be deleted when the original session exits.")
		logDim("Tip: Use 'cw go -p <branch>' to create persistent worktrees that won't be cleaned up.")
	}

	fmt.Println()
	logSuccess("Switching to: %s", selected.Branch)
	logDim("%s", selected.Path)
	logDim("Type 'exit' to leave.")
	fmt.Println()

	userShell := session.UserShell()
	env := system.SandboxEnviron()
	activate := session.ActivateCmd(userShell, filepath.Join(selected.Path, cfg.VenvDir))
	return session.LaunchShell(ctx, system.DefaultExecutor(), userShell, env, activate, selected.Path)
}
