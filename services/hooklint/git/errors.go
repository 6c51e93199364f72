// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package git

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for object store access.
var (
	// ErrBlobNotFound indicates the path does not name a blob at the commit.
	// Covers missing paths, directories, and unresolvable commits.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrCommitNotFound indicates the reference does not resolve to a commit.
	ErrCommitNotFound = errors.New("commit not found")

	// ErrGitNotInstalled indicates the git binary could not be executed.
	ErrGitNotInstalled = errors.New("git is not installed")

	// ErrInvalidInput indicates a nil context or empty/invalid argument.
	ErrInvalidInput = errors.New("invalid input")
)

// CommandError describes a failed git invocation.
//
// Err carries the classification (ErrBlobNotFound, ErrGitNotInstalled,
// a context error) and is returned by Unwrap, so callers test with
// errors.Is and only reach for CommandError when they want the stderr.
type CommandError struct {
	// Args is the argument list passed to git (without the binary).
	Args []string

	// ExitCode is the process exit code, or -1 if git never ran.
	ExitCode int

	// Stderr is git's trimmed standard error.
	Stderr string

	// Err is the underlying classification.
	Err error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "git %s", strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " (exit %d)", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, ": %s", e.Stderr)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}
