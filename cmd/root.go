package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chandlerok/claudway/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "cw",
	Short: "Isolated dev environments in git worktrees",
	Long: `cw provisions an isolated dev environment for working with AI agents.

Each session gets its own git worktree:
  - Disposable by default, removed when the session ends
  - Persistent with -p, reused across sessions
  - Untracked files synced in, dependency directories symlinked
  - Uncommitted work guarded before anything is destroyed`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logDim     = logging.UserDim
	_          = logging.UserInfo // reserved for future use
)
