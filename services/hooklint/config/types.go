// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads hooklint's own settings.
//
// These are settings for the tool (which git, which eslint, colours,
// telemetry), not the ESLint configuration being resolved. Layers, lowest
// to highest precedence:
//
//	defaults → .hooklint.yaml (or --settings) → HOOKLINT_* env → changed flags
//
// Nested keys use "." in files and flags and "__" in environment
// variables: HOOKLINT_GIT__BINARY sets git.binary.
package config

import (
	"time"

	"github.com/AleutianAI/hooklint/pkg/logging"
	"github.com/AleutianAI/hooklint/services/hooklint/telemetry"
)

// Default values.
const (
	DefaultGitBinary    = "git"
	DefaultESLint       = "eslint"
	DefaultColor        = "auto"
	DefaultLogLevel     = "warn"
	DefaultExporter     = telemetry.ExporterNone
	DefaultOTLPEndpoint = "localhost:4317"
)

// Settings is the fully layered tool configuration.
type Settings struct {
	// FallbackConfig is used when the third positional argument is omitted.
	FallbackConfig string `koanf:"fallback_config"`

	Git       GitSettings       `koanf:"git"`
	ESLint    ESLintSettings    `koanf:"eslint"`
	Resolver  ResolverSettings  `koanf:"resolver"`
	Log       LogSettings       `koanf:"log"`
	Telemetry TelemetrySettings `koanf:"telemetry"`

	// Timeout bounds the whole run. Zero means no deadline.
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`

	// Color is auto, always or never.
	Color string `koanf:"color" validate:"oneof=auto always never"`

	// Source is the settings file that was loaded, empty if none.
	Source string `koanf:"-"`
}

// GitSettings configures object store access.
type GitSettings struct {
	Binary string `koanf:"binary" validate:"required"`

	// Dir is passed as git -C. Empty uses the working directory and any
	// inherited GIT_DIR, which is what hooks get.
	Dir string `koanf:"dir"`
}

// ESLintSettings configures the linter process.
type ESLintSettings struct {
	Command   string   `koanf:"command" validate:"required"`
	Args      []string `koanf:"args"`
	LegacyEnv bool     `koanf:"legacy_env"`
	WorkDir   string   `koanf:"work_dir"`
}

// ResolverSettings configures config resolution.
type ResolverSettings struct {
	// CompactExtends drops the nil placeholder for configs without extends.
	CompactExtends bool `koanf:"compact_extends"`
}

// LogSettings configures pkg/logging.
type LogSettings struct {
	Level string `koanf:"level" validate:"oneof=debug info warn warning error"`
	JSON  bool   `koanf:"json"`
	Dir   string `koanf:"dir"`
}

// TelemetrySettings configures services/hooklint/telemetry.
type TelemetrySettings struct {
	Traces       string `koanf:"traces" validate:"oneof=none stdout otlp"`
	Metrics      string `koanf:"metrics" validate:"oneof=none stdout textfile"`
	Textfile     string `koanf:"textfile" validate:"required_if=Metrics textfile"`
	OTLPEndpoint string `koanf:"otlp_endpoint" validate:"required_if=Traces otlp"`
	OTLPInsecure bool   `koanf:"otlp_insecure"`
}

// LoggingConfig converts the log settings to a logging.Config.
//
// Level is already validated, so a parse failure cannot happen for
// settings returned by Load.
func (s *Settings) LoggingConfig() logging.Config {
	level, _ := logging.ParseLevel(s.Log.Level)
	return logging.Config{
		Level:   level,
		JSON:    s.Log.JSON,
		LogDir:  s.Log.Dir,
		Service: "hooklint",
	}
}

// TelemetryConfig converts the telemetry settings to a telemetry.Config.
func (s *Settings) TelemetryConfig(version string) telemetry.Config {
	cfg := telemetry.DefaultConfig()
	cfg.ServiceVersion = version
	cfg.TraceExporter = s.Telemetry.Traces
	cfg.MetricExporter = s.Telemetry.Metrics
	cfg.TextfilePath = s.Telemetry.Textfile
	cfg.OTLPEndpoint = s.Telemetry.OTLPEndpoint
	cfg.OTLPInsecure = s.Telemetry.OTLPInsecure
	return cfg
}

// defaults returns the lowest layer as a flat koanf map.
func defaults() map[string]any {
	return map[string]any{
		"fallback_config":          "",
		"git.binary":               DefaultGitBinary,
		"git.dir":                  "",
		"eslint.command":           DefaultESLint,
		"eslint.args":              []string{},
		"eslint.legacy_env":        true,
		"eslint.work_dir":          "",
		"resolver.compact_extends": false,
		"timeout":                  "0s",
		"color":                    DefaultColor,
		"log.level":                DefaultLogLevel,
		"log.json":                 false,
		"log.dir":                  "",
		"telemetry.traces":         DefaultExporter,
		"telemetry.metrics":        DefaultExporter,
		"telemetry.textfile":       "",
		"telemetry.otlp_endpoint":  DefaultOTLPEndpoint,
		"telemetry.otlp_insecure":  true,
	}
}
