// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lint package.
var (
	// ErrLinterNotInstalled indicates the linter binary was not found in PATH.
	ErrLinterNotInstalled = errors.New("linter not installed")

	// ErrLinterTimeout indicates the linter exceeded the context deadline.
	ErrLinterTimeout = errors.New("linter timeout")

	// ErrLinterFailed indicates the linter process crashed or rejected its
	// configuration.
	ErrLinterFailed = errors.New("linter execution failed")

	// ErrParseOutput indicates failure to parse the linter's JSON output.
	ErrParseOutput = errors.New("failed to parse linter output")

	// ErrSourceUnavailable indicates the file to lint does not exist at the
	// commit.
	ErrSourceUnavailable = errors.New("source unavailable at commit")

	// ErrInvalidInput indicates invalid input to a lint function.
	ErrInvalidInput = errors.New("invalid input")
)

// LinterError wraps errors from the linter process with context.
//
// Thread Safety: Immutable after creation.
type LinterError struct {
	// Linter is the command that failed (e.g., "eslint").
	Linter string

	// ExitCode is the process exit code, or -1 if it never ran.
	ExitCode int

	// Err is the underlying error.
	Err error

	// Output contains any stderr output from the linter.
	Output string
}

// Error implements the error interface.
func (e *LinterError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s (exit %d): %v: %s", e.Linter, e.ExitCode, e.Err, e.Output)
	}
	return fmt.Sprintf("%s (exit %d): %v", e.Linter, e.ExitCode, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *LinterError) Unwrap() error {
	return e.Err
}

// NewLinterError creates a new LinterError.
//
// Description:
//
//	Creates an error with context about which linter failed.
//
// Inputs:
//
//	linter - Name of the linter command (e.g., "eslint")
//	exitCode - Process exit code, -1 when the process never started
//	err - The underlying error
//
// Outputs:
//
//	*LinterError - The wrapped error
func NewLinterError(linter string, exitCode int, err error) *LinterError {
	return &LinterError{
		Linter:   linter,
		ExitCode: exitCode,
		Err:      err,
	}
}

// WithOutput returns a copy of the error with the output field set.
func (e *LinterError) WithOutput(output string) *LinterError {
	return &LinterError{
		Linter:   e.Linter,
		ExitCode: e.ExitCode,
		Err:      e.Err,
		Output:   output,
	}
}
