package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/tally/internal/apperror"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures, or any error that
	// doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or malformed flag values.
	ExitUsage = 2

	// ExitNotFound indicates a requested user, project or task was not found.
	ExitNotFound = 3

	// ExitValidation indicates input failed a validation rule.
	ExitValidation = 5

	// ExitUnauthenticated indicates no acting user where one is required.
	ExitUnauthenticated = 6

	// ExitConflict indicates the resource already exists.
	ExitConflict = 7

	// ExitForbidden indicates the acting user does not own the resource.
	ExitForbidden = 8
)

// ExitCodeError carries the process exit code for a failed command.
// The message has already been reported by the formatter.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// NewUsageError reports incorrect command usage
func NewUsageError(format string, args ...any) *ExitCodeError {
	return &ExitCodeError{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

// ExitCodeFor maps an error onto a process exit code
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch apperror.KindOf(err) {
	case apperror.NotFound:
		return ExitNotFound
	case apperror.Validation:
		return ExitValidation
	case apperror.Unauthenticated:
		return ExitUnauthenticated
	case apperror.Conflict:
		return ExitConflict
	case apperror.Forbidden:
		return ExitForbidden
	default:
		return ExitError
	}
}

// errorCode is the machine-readable code printed with --json
func errorCode(err error) string {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) && exitErr.Code == ExitUsage {
		return "USAGE_ERROR"
	}
	return apperror.KindOf(err).String()
}
