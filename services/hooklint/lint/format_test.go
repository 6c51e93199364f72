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
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/hooklint/pkg/ux"
)

func TestFormatter_Plain(t *testing.T) {
	d := Diagnostic{Line: 1, Column: 5, Message: "'x' is assigned a value but never used.", Rule: "no-unused-vars"}

	got := PlainFormatter().Format("src/index.js", d)

	assert.Equal(t, "src/index.js:1:5 - 'x' is assigned a value but never used. [no-unused-vars]", got)
}

func TestFormatter_UsesCallerPath(t *testing.T) {
	d := Diagnostic{File: "src/index.js", Line: 2, Column: 1, Message: "m", Rule: "r"}

	got := PlainFormatter().Format("./src/index.js", d)

	assert.Equal(t, "./src/index.js:2:1 - m [r]", got)
}

func TestFormatter_StylingPreservesText(t *testing.T) {
	d := Diagnostic{Line: 10, Column: 3, Message: "Missing semicolon.", Rule: "semi"}
	plain := PlainFormatter().Format("a.js", d)

	styled := NewFormatter(ux.NewDiagnosticStyles(&bytes.Buffer{}, ux.ColorAlways)).Format("a.js", d)

	assert.NotEqual(t, plain, styled)
	assert.Contains(t, styled, "\x1b[")
	assert.Equal(t, plain, ansi.Strip(styled))
}

func TestFormatter_AutoOnNonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	d := Diagnostic{Line: 1, Column: 1, Message: "m", Rule: "r"}

	got := NewFormatter(ux.NewDiagnosticStyles(&buf, ux.ColorAuto)).Format("a.js", d)

	assert.Equal(t, "a.js:1:1 - m [r]", got)
}

func TestFormatter_MultilineAndTabs(t *testing.T) {
	d := Diagnostic{Line: 1, Column: 1, Message: "first\n\tsecond", Rule: "r"}

	got := PlainFormatter().Format("a.js", d)

	assert.Equal(t, "a.js:1:1 - first\n\tsecond [r]", got)
}

func TestFormatter_FormatAll(t *testing.T) {
	f := PlainFormatter()

	assert.NotNil(t, f.FormatAll("a.js", nil))
	assert.Empty(t, f.FormatAll("a.js", nil))

	lines := f.FormatAll("a.js", []Diagnostic{
		{Line: 1, Column: 1, Message: "one", Rule: "a"},
		{Line: 2, Column: 1, Message: "two", Rule: "b"},
	})
	assert.Equal(t, []string{"a.js:1:1 - one [a]", "a.js:2:1 - two [b]"}, lines)
}
