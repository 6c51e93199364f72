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
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestDiagnostic_Location(t *testing.T) {
	d := Diagnostic{File: "src/a.js", Line: 3, Column: 7}
	assert.Equal(t, "src/a.js:3:7", d.Location())
}

func TestDiagnostic_JSON(t *testing.T) {
	data, err := json.Marshal(Diagnostic{File: "a.js", Line: 1, Column: 2, Rule: "semi", Severity: SeverityError, Message: "Missing semicolon."})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"severity":"error"`)
	assert.Contains(t, s, `"rule":"semi"`)
	assert.NotContains(t, s, "end_line")
	assert.NotContains(t, s, "fatal")
}

func TestErrorsOnly(t *testing.T) {
	diags := []Diagnostic{
		{Rule: "a", Severity: SeverityError},
		{Rule: "b", Severity: SeverityWarning},
		{Rule: "c", Severity: SeverityInfo},
		{Rule: "d", Severity: SeverityError},
	}

	got := ErrorsOnly(diags)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Rule)
	assert.Equal(t, "d", got[1].Rule)

	assert.NotNil(t, ErrorsOnly(nil))
	assert.Empty(t, ErrorsOnly([]Diagnostic{{Severity: SeverityWarning}}))
}

func TestResult_Passed(t *testing.T) {
	assert.True(t, (&Result{}).Passed())
	assert.False(t, (&Result{Errors: []Diagnostic{{}}}).Passed())
}

func TestLinterError(t *testing.T) {
	base := NewLinterError("eslint", 2, ErrLinterFailed)
	withOut := base.WithOutput("Oops! Something went wrong!")

	assert.True(t, errors.Is(withOut, ErrLinterFailed))
	assert.Empty(t, base.Output, "WithOutput must not modify the receiver")
	assert.True(t, strings.HasPrefix(withOut.Error(), "eslint (exit 2): linter execution failed"))
	assert.Contains(t, withOut.Error(), "Something went wrong")

	var le *LinterError
	require.True(t, errors.As(error(withOut), &le))
	assert.Equal(t, 2, le.ExitCode)
}
