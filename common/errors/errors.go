package errors

import "fmt"

// ExitCodeError pairs an error with the exit code the process should end with.
type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

func (e *ExitCodeError) Cause() error {
	return e.error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("%v (exit code %d)", e.error, e.code)
}
