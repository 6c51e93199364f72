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
	"bytes"
	"encoding/json"
	"fmt"
)

// Rule identifiers for messages ESLint reports without a rule.
const (
	// RuleFatal marks a source the linter could not parse.
	RuleFatal = "fatal"

	// RuleCore marks other rule-less messages (unused disable directives,
	// ignored-file notices).
	RuleCore = "eslint"
)

// =============================================================================
// ESLINT PARSER
// =============================================================================

// eslintOutput represents the JSON output from ESLint.
type eslintOutput []eslintFile

type eslintFile struct {
	FilePath     string          `json:"filePath"`
	Messages     []eslintMessage `json:"messages"`
	ErrorCount   int             `json:"errorCount"`
	WarningCount int             `json:"warningCount"`
}

type eslintMessage struct {
	RuleID    *string `json:"ruleId"`
	Severity  int     `json:"severity"` // 1 = warning, 2 = error
	Message   string  `json:"message"`
	Line      int     `json:"line"`
	Column    int     `json:"column"`
	EndLine   int     `json:"endLine"`
	EndColumn int     `json:"endColumn"`
	Fatal     bool    `json:"fatal"`
}

// parseESLintOutput parses JSON output from ESLint.
//
// Description:
//
//	ESLint --format json produces an array of file results. With --stdin
//	there is exactly one, but every entry is read so nothing is lost if
//	a plugin reports extra virtual files. Message order is preserved.
//
// Inputs:
//
//	data - Raw JSON output from eslint --format json
//	filename - Path reported on every diagnostic
//
// Outputs:
//
//	[]Diagnostic - Parsed diagnostics, never nil
//	error - Wraps ErrParseOutput if the output is empty or not JSON
func parseESLintOutput(data []byte, filename string) ([]Diagnostic, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrParseOutput)
	}

	var output eslintOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseOutput, err)
	}

	diags := make([]Diagnostic, 0)
	for _, file := range output {
		for _, msg := range file.Messages {
			diags = append(diags, Diagnostic{
				File:      filename,
				Line:      msg.Line,
				Column:    msg.Column,
				EndLine:   msg.EndLine,
				EndColumn: msg.EndColumn,
				Rule:      ruleID(msg),
				Severity:  mapESLintSeverity(msg.Severity),
				Message:   msg.Message,
				Fatal:     msg.Fatal,
			})
		}
	}

	return diags, nil
}

func ruleID(msg eslintMessage) string {
	switch {
	case msg.RuleID != nil && *msg.RuleID != "":
		return *msg.RuleID
	case msg.Fatal:
		return RuleFatal
	default:
		return RuleCore
	}
}

// mapESLintSeverity maps ESLint numeric severity to our Severity.
func mapESLintSeverity(severity int) Severity {
	switch severity {
	case 2: // error
		return SeverityError
	case 1: // warning
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
