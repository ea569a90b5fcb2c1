package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chandlerok/claudway/internal/errors"
	"github.com/chandlerok/claudway/internal/prompt"
	"github.com/chandlerok/claudway/internal/tui"
	"github.com/chandlerok/claudway/internal/worktree"
)

// rmSummaryLimit caps the uncommitted-change listing shown before the
// removal confirmation.
const rmSummaryLimit = 10

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Remove a persistent worktree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Remove without prompting, even with uncommitted changes")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	repo, err := requireRepo(ctx)
	if err != nil {
		return err
	}
	manager := newManager(repo)

	persistent := filterWorktrees(manager.List(ctx), worktree.KindPersistent)
	if len(persistent) == 0 {
		return errors.ValidationError("no persistent worktrees found")
	}

	var selected worktree.Worktree
	switch {
	case len(args) == 1:
		var ok bool
		if selected, ok = findByBranch(persistent, args[0]); !ok {
			logWarning("No persistent worktree found for branch '%s'.", args[0])
			logDim("Available persistent worktrees:")
			for _, wt := range persistent {
				fmt.Printf("  %s  %s\n", wt.Branch, wt.Path)
			}
			return errors.ValidationError(fmt.Sprintf("no persistent worktree for branch '%s'", args[0]))
		}

	case prompt.IsInteractive():
		result, err := tui.RunWorktreePicker("cw - Remove Worktree", persistent)
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

	if !rmForce {
		if err := confirmDirtyRemoval(ctx, manager, selected); err != nil {
			return err
		}
	}

	logWarning("Removing worktree for '%s' ...", selected.Branch)
	manager.Destroy(ctx, selected.Path)
	logSuccess("Removed persistent worktree for %s", selected.Branch)
	return nil
}

// confirmDirtyRemoval prompts when the worktree still holds uncommitted
// changes. A clean or missing directory passes silently.
func confirmDirtyRemoval(ctx context.Context, manager *worktree.Manager, selected worktree.Worktree) error {
	if _, err := os.Stat(selected.Path); err != nil {
		return nil
	}
	changes := manager.Git().StatusPorcelain(ctx, selected.Path)
	if changes == "" {
		return nil
	}

	logWarning("Uncommitted changes in '%s':", selected.Branch)
	fmt.Println()
	lines := strings.Split(changes, "\n")
	for i, line := range lines {
		if i == rmSummaryLimit {
			logDim("  ... and %d more", len(lines)-rmSummaryLimit)
			break
		}
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()

	if !prompt.New().Confirm("Remove anyway?", false) {
		logDim("Aborted.")
		return errors.UserDeclined()
	}
	return nil
}
