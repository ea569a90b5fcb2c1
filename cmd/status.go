package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/chandlerok/claudway/internal/git"
	"github.com/chandlerok/claudway/internal/worktree"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current configuration and active worktrees",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

var kindStyles = map[worktree.Kind]lipgloss.Style{
	worktree.KindPrimary:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	worktree.KindPersistent: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	worktree.KindTemporary:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
}

var kindFallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Claudway Config")
	fmt.Printf("  default_command: %s\n", cfg.Command)
	if cfg.DefaultRepo != "" {
		fmt.Printf("  default_repo_location: %s\n", cfg.DefaultRepo)
	}
	fmt.Printf("  config file: %s\n", appPaths.ConfigFile)

	repo := git.NewRunner(nil).DetectRepo(ctx, "")
	if repo == "" {
		fmt.Println()
		logDim("Not inside a git repository, skipping worktree listing.")
		return nil
	}

	worktrees := newManager(repo).List(ctx)
	if len(worktrees) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Active Worktrees")
	for _, wt := range worktrees {
		style, ok := kindStyles[wt.Kind]
		if !ok {
			style = kindFallbackStyle
		}
		fmt.Printf("  %-30s %-12s %s\n", wt.Branch, style.Render(wt.Kind.String()), wt.Path)
	}
	return nil
}
