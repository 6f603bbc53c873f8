package cli

import (
	"errors"
	"fmt"
)

// Exit codes. The tool keeps the surface small: anything that goes
// wrong — bad arguments, unreadable settings, a failed sort — exits 1.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitError carries an exit code out of a cobra RunE so main can
// translate command failures without string matching.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error, defaulting to
// ExitFailure for plain errors.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
