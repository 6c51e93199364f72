// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package eslintrc

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "mapping", input: "rules:\n  semi: error\n"},
		{name: "flow mapping", input: "{extends: [a]}"},
		{name: "empty", input: "", wantErr: ErrEmptyConfig},
		{name: "comment only", input: "# nothing here\n", wantErr: ErrEmptyConfig},
		{name: "explicit null", input: "null\n", wantErr: ErrEmptyConfig},
		{name: "scalar root", input: "just a string\n", wantErr: ErrNotMapping},
		{name: "sequence root", input: "- a\n- b\n", wantErr: ErrNotMapping},
		{name: "syntax error", input: "rules: [unclosed\n", wantErr: ErrInvalidYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}

func TestParse_NormalizesNestedKeys(t *testing.T) {
	cfg, err := Parse([]byte("rules:\n  max-len: [2, {code: 100}]\nsettings:\n  1: one\n  true: yes\n"))
	require.NoError(t, err)

	settings, ok := cfg["settings"].(map[string]any)
	require.True(t, ok, "settings should be map[string]any, got %T", cfg["settings"])
	assert.Equal(t, "one", settings["1"])

	// Re-encoding through JSON fails on map[any]any, so this guards the
	// normalisation end to end.
	_, err = json.Marshal(cfg)
	require.NoError(t, err)
}

func TestConfig_Extends(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    []any
		present bool
	}{
		{"absent", Config{"rules": map[string]any{}}, nil, false},
		{"null", Config{"extends": nil}, nil, true},
		{"scalar", Config{"extends": "a"}, []any{"a"}, true},
		{"sequence", Config{"extends": []any{"a", "b"}}, []any{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cfg.Extends()
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	orig := Config{
		"extends": []any{"a"},
		"rules":   map[string]any{"semi": []any{2, "always"}},
	}

	clone := orig.Clone()
	clone["extends"] = append(clone["extends"].([]any), "b")
	clone["rules"].(map[string]any)["semi"].([]any)[0] = 0

	assert.Equal(t, []any{"a"}, orig["extends"])
	assert.Equal(t, 2, orig["rules"].(map[string]any)["semi"].([]any)[0])
	assert.Nil(t, Config(nil).Clone())
}

func TestConfig_Marshal(t *testing.T) {
	cfg := Config{"extends": []any{"base.yml", "my-rules"}, "root": true}

	data, err := cfg.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg["extends"], back["extends"])
	assert.Equal(t, true, back["root"])
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "base.yml")
	require.NoError(t, os.WriteFile(good, []byte("rules:\n  no-unused-vars: error\n"), 0644))

	cfg, err := LoadFile(good)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"no-unused-vars": "error"}, cfg["rules"])

	_, err = LoadFile(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	empty := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = LoadFile(empty)
	assert.True(t, errors.Is(err, ErrEmptyConfig))
}

func TestLoadFile_RelativeToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yml"), []byte("root: true\n"), 0644))
	t.Chdir(dir)

	cfg, err := LoadFile("base.yml")
	require.NoError(t, err)
	assert.Equal(t, true, cfg["root"])
}
