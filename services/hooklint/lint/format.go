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
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/hooklint/pkg/ux"
)

// Formatter renders diagnostics as "<file>:<line>:<col> - <message> [<rule>]".
type Formatter struct {
	styles ux.DiagnosticStyles
}

// NewFormatter creates a formatter using the given segment styles.
func NewFormatter(styles ux.DiagnosticStyles) *Formatter {
	return &Formatter{styles: styles}
}

// PlainFormatter creates a formatter that never emits escape sequences.
func PlainFormatter() *Formatter {
	return NewFormatter(ux.PlainStyles())
}

// Format renders one diagnostic.
//
// file is the path as the caller gave it, which is what the user expects
// to see even when the linter normalised it.
func (f *Formatter) Format(file string, d Diagnostic) string {
	d.File = file
	return render(f.styles.Location, d.Location()) +
		" - " + render(f.styles.Message, d.Message) +
		" [" + render(f.styles.Rule, d.Rule) + "]"
}

// FormatAll renders diags in order. The result is never nil.
func (f *Formatter) FormatAll(file string, diags []Diagnostic) []string {
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, f.Format(file, d))
	}
	return lines
}

// render styles each line of s separately so multi-line messages are not
// padded into a block.
func render(style lipgloss.Style, s string) string {
	if s == "" || !strings.Contains(s, "\n") {
		return style.Render(s)
	}
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = style.Render(p)
	}
	return strings.Join(parts, "\n")
}
