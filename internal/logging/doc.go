// Package logging provides logging utilities for cw.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating worktree", "branch", branch, "path", path)
//	logging.Warn("sync failed", "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Reusing worktree at %s", path)
//	logging.UserSuccess("Worktree created for %s", branch)
//	logging.UserWarning("Uncommitted changes in '%s'", branch)
//	logging.UserError("Failed to create worktree: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess, UserDim, UserBold: stdout
//   - UserWarning, UserError: stderr
package logging
