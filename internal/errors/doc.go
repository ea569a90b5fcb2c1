// Package errors provides typed errors with exit codes for cw.
//
// # Error Types
//
// CwError is the base error type that wraps an error with an exit code:
//
//	type CwError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// cw keeps the exit-code surface deliberately small:
//
//	ExitSuccess      = 0   // Success
//	ExitGeneralError = 1   // Declined prompts, validation, environment errors
//	128 + N                // Terminated by signal N (SignalExitCode)
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.UserDeclined()
//	errors.NotARepository()
//	errors.Conflict(stderr)
//	errors.ConfigError("failed to parse config", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
