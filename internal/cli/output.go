package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

// Exit codes for CLI commands, one per failure kind so callers can tell
// input problems apart from runtime failures.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Runtime failure (empty schema, write errors)
	ExitCommandError = 2 // Command error (invalid flags or arguments)
	ExitNotFound     = 3 // Input file missing
	ExitDecodeError  = 4 // Malformed JSON input
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// inputExitCode classifies an error from loading an input file: missing
// files map to ExitNotFound, malformed JSON to ExitDecodeError, anything
// else to ExitFailure.
func inputExitCode(err error) int {
	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return ExitDecodeError
	}
	return ExitFailure
}
