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
	"context"
	"fmt"
	"time"

	"github.com/AleutianAI/hooklint/services/hooklint/eslintrc"
)

// =============================================================================
// SEVERITY
// =============================================================================

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	// SeverityInfo represents diagnostics ESLint reports with severity 0.
	SeverityInfo Severity = iota

	// SeverityWarning represents diagnostics that are counted but never reported.
	SeverityWarning

	// SeverityError represents diagnostics that fail the hook.
	SeverityError
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// =============================================================================
// DIAGNOSTIC
// =============================================================================

// Diagnostic is a single finding reported by the linter.
type Diagnostic struct {
	// File is the repository-relative path that was linted.
	File string `json:"file"`

	// Line is the 1-based line number.
	Line int `json:"line"`

	// Column is the 1-based column number.
	Column int `json:"column"`

	// EndLine is the 1-based end line (0 if not available).
	EndLine int `json:"end_line,omitempty"`

	// EndColumn is the 1-based end column (0 if not available).
	EndColumn int `json:"end_column,omitempty"`

	// Rule is the rule identifier (e.g., "no-unused-vars"). Parse failures
	// use "fatal".
	Rule string `json:"rule"`

	// Severity is the diagnostic severity.
	Severity Severity `json:"severity"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Fatal is set when the linter could not parse the source.
	Fatal bool `json:"fatal,omitempty"`
}

// Location returns "file:line:col".
func (d Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
}

// ErrorsOnly returns the error-severity diagnostics in their original order.
// The result is never nil.
func ErrorsOnly(diags []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// =============================================================================
// LINTER
// =============================================================================

// Linter lints in-memory source against an explicit configuration.
type Linter interface {
	// Lint returns the diagnostics for source in emission order.
	//
	// cfg is the only configuration the linter may use; filename is used
	// for reporting and for file-type detection, never read from disk.
	Lint(ctx context.Context, cfg eslintrc.Config, source []byte, filename string) ([]Diagnostic, error)
}

// =============================================================================
// RESULT
// =============================================================================

// Result contains the outcome of checking one file at one commit.
//
// Thread Safety: Immutable after creation by the runner.
type Result struct {
	// Commit is the commit reference that was checked.
	Commit string `json:"commit"`

	// File is the checked path as given by the caller.
	File string `json:"file"`

	// Errors are the error-severity diagnostics in linter emission order.
	Errors []Diagnostic `json:"errors"`

	// WarningCount is the number of non-error diagnostics that were dropped.
	WarningCount int `json:"warning_count"`

	// Duration is the wall time of the whole check.
	Duration time.Duration `json:"duration_ns"`

	// Lines are the formatted error lines, one per entry in Errors.
	Lines []string `json:"-"`
}

// Passed reports whether no errors were found.
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}
