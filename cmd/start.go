package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/chandlerok/claudway/internal/branch"
	"github.com/chandlerok/claudway/internal/errors"
	"github.com/chandlerok/claudway/internal/prompt"
	"github.com/chandlerok/claudway/internal/session"
	"github.com/chandlerok/claudway/internal/system"
)

var (
	startCommand    string
	startShellOnly  bool
	startPersistent bool
	startBase       string
)

var startCmd = &cobra.Command{
	Use:     "start [branch]",
	Aliases: []string{"go"},
	Short:   "Start an isolated dev environment in a git worktree",
	Long: `Start an isolated dev environment in a git worktree.

Creates a worktree for the branch, syncs untracked files from the
primary checkout, symlinks dependency directories, launches the agent
command, and drops into a shell. Temporary worktrees are removed when
the shell exits; pass -p for a persistent worktree that is reused on
the next start.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startCommand, "command", "c", "", "Command to run instead of the default agent")
	startCmd.Flags().BoolVarP(&startShellOnly, "shell", "s", false, "Drop straight into a shell without launching the agent")
	startCmd.Flags().BoolVarP(&startPersistent, "persistent", "p", false, "Keep the worktree for reuse instead of removing it on exit")
	startCmd.Flags().StringVar(&startBase, "base", "", "Base ref for a newly created branch (defaults to HEAD)")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := resolveRepo(ctx, cfg)
	if err != nil {
		return err
	}

	manager := newManager(repo)
	prompter := prompt.New()
	resolver := branch.NewResolver(repo, manager.Git(), prompter)

	branchName, err := chooseBranch(ctx, resolver, prompter, prompt.IsInteractive(), args, startBase)
	if err != nil {
		return err
	}

	command := cfg.Command
	if startCommand != "" {
		command = startCommand
	}

	sess := session.New(manager, cfg, appPaths, system.DefaultExecutor(), prompter, session.Options{
		Branch:     branchName,
		Command:    command,
		ShellOnly:  startShellOnly,
		Persistent: startPersistent,
	})
	return sess.Run(ctx)
}

// chooseBranch picks the branch for a session: the argument when
// given, the interactive picker on a terminal, or a plain line read
// from stdin otherwise, so piped invocations still work.
func chooseBranch(ctx context.Context, resolver *branch.Resolver, prompter prompt.Prompter, interactive bool, args []string, base string) (string, error) {
	switch {
	case len(args) == 1:
		return resolver.Resolve(ctx, args[0], base)
	case interactive:
		return resolver.Pick(ctx, base)
	default:
		name, err := prompter.Input("Enter a branch name")
		if err != nil || name == "" {
			return "", errors.UserDeclined()
		}
		return resolver.Resolve(ctx, name, base)
	}
}
