package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chandlerok/claudway/internal/errors"
)

// TempPrefix is the directory-name prefix of temporary worktrees. The
// classifier relies on it to tell cw-owned temp directories apart from
// anything else under the system temp root.
const TempPrefix = "cw-"

// DefaultCommand is the agent launched in new sessions when the config
// file does not override it.
const DefaultCommand = "claude"

// Paths holds the filesystem locations cw reads and writes.
type Paths struct {
	ConfigDir      string // ~/.config/claudway
	ConfigFile     string // ~/.config/claudway/config.toml
	PersistentRoot string // ~/.local/share/claudway/worktrees
	TempRoot       string // os.TempDir()
}

// DefaultPaths returns the standard path layout rooted at the user's home.
func DefaultPaths() *Paths {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configDir := filepath.Join(home, ".config", "claudway")
	return &Paths{
		ConfigDir:      configDir,
		ConfigFile:     filepath.Join(configDir, "config.toml"),
		PersistentRoot: filepath.Join(home, ".local", "share", "claudway", "worktrees"),
		TempRoot:       os.TempDir(),
	}
}

// Config is the persisted key-value configuration. It is loaded once at
// startup and threaded explicitly into the commands that need it.
type Config struct {
	// DefaultRepo is the repository used by start when the current
	// directory is not inside a git repository.
	DefaultRepo string `toml:"default_repo_location"`

	// Command is the agent command launched in new sessions.
	Command string `toml:"default_command"`

	// DepSymlinks are repo-relative dependency directories symlinked
	// (never copied) from the primary checkout into each worktree.
	DepSymlinks []string `toml:"dep_symlinks"`

	// VenvDir is the repo-relative virtualenv directory used to build
	// the shell activation command.
	VenvDir string `toml:"venv_dir"`
}

// defaults returns the built-in configuration.
func defaults() *Config {
	return &Config{
		Command:     DefaultCommand,
		DepSymlinks: []string{"web/node_modules", "mamba/venv"},
		VenvDir:     filepath.Join("mamba", "venv"),
	}
}

// Load reads the config file, returning built-in defaults when it does
// not exist. A file that exists but cannot be parsed is a reported,
// recoverable error naming the file.
func Load(paths *Paths) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(paths.ConfigFile)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read %s", paths.ConfigFile), err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigError(
			fmt.Sprintf("failed to parse %s (fix or delete the file and re-run)", paths.ConfigFile), err)
	}
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	return cfg, nil
}

// SaveValue persists a single key into the config file, preserving any
// other keys already present.
func SaveValue(paths *Paths, key string, value string) error {
	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to create %s", paths.ConfigDir), err)
	}

	// Read existing keys so a save never drops settings written by a
	// newer version.
	values := map[string]any{}
	if data, err := os.ReadFile(paths.ConfigFile); err == nil {
		if err := toml.Unmarshal(data, &values); err != nil {
			return errors.ConfigError(
				fmt.Sprintf("failed to parse %s (fix or delete the file and re-run)", paths.ConfigFile), err)
		}
	} else if !os.IsNotExist(err) {
		return errors.ConfigError(fmt.Sprintf("failed to read %s", paths.ConfigFile), err)
	}
	values[key] = value

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to write %s", paths.ConfigFile), err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(values); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to write %s", paths.ConfigFile), err)
	}
	return nil
}

// SaveDefaultRepo persists the default repository location.
func SaveDefaultRepo(paths *Paths, repo string) error {
	abs, err := filepath.Abs(repo)
	if err != nil {
		abs = repo
	}
	return SaveValue(paths, "default_repo_location", abs)
}

// SaveDefaultCommand persists the default agent command.
func SaveDefaultCommand(paths *Paths, command string) error {
	return SaveValue(paths, "default_command", command)
}

// ValidateRepoPath checks that a path exists and is a directory.
func ValidateRepoPath(path string) (string, error) {
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.ValidationError(fmt.Sprintf("invalid path %q", path))
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", errors.ValidationError(fmt.Sprintf("'%s' is not a valid directory", abs))
	}
	return abs, nil
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
