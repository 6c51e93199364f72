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
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ExtendsKey is the config field holding inherited configs.
const ExtendsKey = "extends"

// Config is a parsed ESLint configuration.
//
// Only the extends field is interpreted; everything else (rules, env,
// parserOptions, ...) is passed through to the linter untouched.
type Config map[string]any

// Extends returns the extends entries and whether the key is present.
//
// A scalar or mapping value is returned as a single-element slice. The
// returned slice aliases the config for sequence values.
func (c Config) Extends() ([]any, bool) {
	v, ok := c[ExtendsKey]
	if !ok {
		return nil, false
	}
	switch ext := v.(type) {
	case []any:
		return ext, true
	case nil:
		return nil, true
	default:
		return []any{ext}, true
	}
}

// Clone returns a deep copy of the config's maps and slices.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	return Config(cloneMap(c))
}

// Marshal serialises the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(c)); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes a YAML document into a Config.
//
// # Outputs
//
//   - Config: The decoded mapping with nested keys normalised to strings.
//   - error: ErrEmptyConfig for an empty or null document, ErrNotMapping
//     when the root is a scalar or sequence, ErrInvalidYAML on syntax errors.
func Parse(data []byte) (Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if raw == nil {
		return nil, ErrEmptyConfig
	}

	normalized := normalize(raw)
	m, ok := normalized.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root is %T", ErrNotMapping, raw)
	}
	return Config(m), nil
}

// LoadFile reads and parses a config from the local filesystem.
// Relative paths are resolved against the process working directory.
func LoadFile(path string) (Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", abs, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", abs, err)
	}
	return cfg, nil
}

// normalize converts map[any]any (produced for non-string keys) into
// map[string]any recursively so configs survive re-encoding and JSON.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = normalize(child)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range val {
			val[i] = normalize(child)
		}
		return val
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case Config:
		return Config(cloneMap(val))
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = cloneValue(child)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
