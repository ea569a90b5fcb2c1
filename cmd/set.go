package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chandlerok/claudway/internal/config"
	"github.com/chandlerok/claudway/internal/errors"
	"github.com/chandlerok/claudway/internal/prompt"
)

var setDefaultRepoCmd = &cobra.Command{
	Use:   "set-default-repo [path]",
	Short: "Set the default repository used outside a git checkout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSetDefaultRepo,
}

var setDefaultCommandCmd = &cobra.Command{
	Use:   "set-default-command <command>",
	Short: "Set the command run in new sessions",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetDefaultCommand,
}

func init() {
	rootCmd.AddCommand(setDefaultRepoCmd)
	rootCmd.AddCommand(setDefaultCommandCmd)
}

func runSetDefaultRepo(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		var err error
		path, err = prompt.New().Input("Path to the repository")
		if err != nil || path == "" {
			return errors.UserDeclined()
		}
	}

	resolved, err := config.ValidateRepoPath(path)
	if err != nil {
		return err
	}
	if err := config.SaveDefaultRepo(appPaths, resolved); err != nil {
		return err
	}

	logSuccess("default_repo_location set to: %s", resolved)
	logDim("Saved to %s", appPaths.ConfigFile)
	return nil
}

func runSetDefaultCommand(cmd *cobra.Command, args []string) error {
	if err := config.SaveDefaultCommand(appPaths, args[0]); err != nil {
		return err
	}

	logSuccess("default_command set to: %s", args[0])
	logDim("Saved to %s", appPaths.ConfigFile)
	return nil
}
