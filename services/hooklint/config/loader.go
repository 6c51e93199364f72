// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HOOKLINT_"

// FileNames are the settings files looked up in the working directory
// when no explicit file is given.
var FileNames = []string{".hooklint.yaml", ".hooklint.yml"}

// flagKeys maps CLI flag names to settings keys. Flags not listed here
// (--settings, --resolve-only, --json) are command behaviour, not settings.
var flagKeys = map[string]string{
	"fallback-config":  "fallback_config",
	"git":              "git.binary",
	"git-dir":          "git.dir",
	"eslint":           "eslint.command",
	"eslint-arg":       "eslint.args",
	"eslint-dir":       "eslint.work_dir",
	"compact-extends":  "resolver.compact_extends",
	"timeout":          "timeout",
	"color":            "color",
	"log-level":        "log.level",
	"log-json":         "log.json",
	"log-dir":          "log.dir",
	"traces":           "telemetry.traces",
	"metrics":          "telemetry.metrics",
	"metrics-textfile": "telemetry.textfile",
	"otlp-endpoint":    "telemetry.otlp_endpoint",
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// File is an explicit settings file. It must exist.
	File string

	// Dir is searched for FileNames when File is empty. Empty means the
	// working directory.
	Dir string

	// Flags contributes explicitly changed flags. May be nil.
	Flags *pflag.FlagSet
}

// Load builds Settings from all layers and validates them.
//
// Description:
//
//	Precedence (highest to lowest): changed flags > env vars > settings
//	file > defaults. A fresh koanf instance is used per call, so Load has
//	no package state and is safe to call from tests in sequence.
//
// Inputs:
//
//	opts - Where to look for the settings file and which flags to apply
//
// Outputs:
//
//	*Settings - Validated settings; Source names the file that was used
//	error - File read/parse errors, or ErrInvalidSettings
func Load(opts LoadOptions) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Settings file
	source, err := findSettingsFile(opts)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", source, err)
		}
	}

	// 3. Environment: HOOKLINT_GIT__BINARY -> git.binary
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, flagValue(opts.Flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	s.Source = source

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// findSettingsFile returns the file to load, or "" when there is none.
func findSettingsFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", fmt.Errorf("settings file %s: %w", opts.File, err)
		}
		return opts.File, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", nil
}

// envKey transforms an environment variable name into a settings key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// flagValue returns the posflag callback that maps changed flags to keys.
func flagValue(flags *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		if f.Value.Type() == "stringArray" {
			vals, err := flags.GetStringArray(f.Name)
			if err != nil {
				return "", nil
			}
			return key, vals
		}
		return key, posflag.FlagVal(flags, f)
	}
}
