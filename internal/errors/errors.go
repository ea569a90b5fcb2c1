package errors

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Exit codes for cw
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

// SignalExitCode returns the conventional exit code for a process
// terminated by the given signal.
func SignalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return ExitGeneralError
}

// CwError is the base error type for cw
type CwError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CwError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CwError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CwError) ExitCode() int {
	return e.Code
}

// New creates a new CwError
func New(code int, message string) *CwError {
	return &CwError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CwError
func Wrap(code int, message string, cause error) *CwError {
	return &CwError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// errDeclined is the sentinel wrapped by UserDeclined so callers can
// distinguish a declined prompt from other exit-1 conditions.
var errDeclined = errors.New("declined")

// Common error constructors

// UserDeclined returns the controlled-abort error used when the user
// answers "no" to a confirmation prompt. No partial state exists when
// it is returned.
func UserDeclined() *CwError {
	return Wrap(ExitGeneralError, "aborted", errDeclined)
}

// NotARepository returns an error for commands run outside a git repository
func NotARepository() *CwError {
	return New(ExitGeneralError, "not inside a git repository")
}

// RepoNotConfigured returns an error for a missing default repo setting
func RepoNotConfigured() *CwError {
	return New(ExitGeneralError, "default repo is not set, run 'cw set-default-repo' first")
}

// Conflict returns an unrecoverable worktree conflict error carrying the
// underlying tool's message verbatim.
func Conflict(stderr string) *CwError {
	return New(ExitGeneralError, stderr)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CwError {
	return Wrap(ExitGeneralError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *CwError {
	return New(ExitGeneralError, message)
}

// WorktreeError returns an error for worktree operations
func WorktreeError(op string, cause error) *CwError {
	return Wrap(ExitGeneralError, fmt.Sprintf("worktree %s failed", op), cause)
}

// BranchError returns an error for branch operations
func BranchError(op string, cause error) *CwError {
	return Wrap(ExitGeneralError, fmt.Sprintf("branch %s failed", op), cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cwErr *CwError
	if errors.As(err, &cwErr) {
		return cwErr.ExitCode()
	}
	return ExitGeneralError
}

// IsUserDeclined reports whether err is a declined confirmation
func IsUserDeclined(err error) bool {
	return errors.Is(err, errDeclined)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
