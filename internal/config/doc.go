// Package config provides configuration types and loading for cw.
//
// # Configuration File
//
// Settings live in ~/.config/claudway/config.toml:
//
//	default_repo_location = "/home/dev/src/project"
//	default_command = "claude"
//
// Load returns an immutable value object that commands receive
// explicitly; nothing in this package is read ambiently after startup.
// A config file that exists but cannot be parsed is reported with a
// recoverable error naming the file, never a crash.
//
// # Paths
//
// Paths collects the filesystem locations cw uses: the config directory,
// the persistent-worktrees root, and the system temp root under which
// temporary worktrees (cw-*) are created. Tests substitute a Paths value
// rooted in a temp directory.
package config
