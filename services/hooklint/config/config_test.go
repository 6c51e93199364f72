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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/hooklint/pkg/logging"
	"github.com/AleutianAI/hooklint/services/hooklint/telemetry"
)

// testFlags mirrors the flags registered by cmd/hooklint.
func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("hooklint", pflag.ContinueOnError)
	fs.String("settings", "", "")
	fs.String("fallback-config", "", "")
	fs.String("git", DefaultGitBinary, "")
	fs.String("git-dir", "", "")
	fs.String("eslint", DefaultESLint, "")
	fs.StringArray("eslint-arg", nil, "")
	fs.Bool("compact-extends", false, "")
	fs.Duration("timeout", 0, "")
	fs.String("color", DefaultColor, "")
	fs.String("log-level", DefaultLogLevel, "")
	fs.String("traces", DefaultExporter, "")
	fs.String("metrics", DefaultExporter, "")
	fs.String("metrics-textfile", "", "")
	fs.Bool("resolve-only", false, "")
	return fs
}

func writeSettings(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "", s.FallbackConfig)
	assert.Equal(t, "git", s.Git.Binary)
	assert.Equal(t, "eslint", s.ESLint.Command)
	assert.True(t, s.ESLint.LegacyEnv)
	assert.Empty(t, s.ESLint.Args)
	assert.False(t, s.Resolver.CompactExtends)
	assert.Equal(t, time.Duration(0), s.Timeout)
	assert.Equal(t, "auto", s.Color)
	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, "none", s.Telemetry.Traces)
	assert.Equal(t, "none", s.Telemetry.Metrics)
	assert.Equal(t, "localhost:4317", s.Telemetry.OTLPEndpoint)
	assert.Equal(t, "", s.Source)
}

func TestLoad_SettingsFileInDir(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, ".hooklint.yaml", `
fallback_config: /etc/eslint/base.yml
git:
  dir: /srv/repos/app.git
eslint:
  command: /opt/node/bin/eslint
  args: [--rulesdir, rules]
resolver:
  compact_extends: true
timeout: 45s
`)

	s, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, path, s.Source)
	assert.Equal(t, "/etc/eslint/base.yml", s.FallbackConfig)
	assert.Equal(t, "/srv/repos/app.git", s.Git.Dir)
	assert.Equal(t, "git", s.Git.Binary, "unset keys keep defaults")
	assert.Equal(t, "/opt/node/bin/eslint", s.ESLint.Command)
	assert.Equal(t, []string{"--rulesdir", "rules"}, s.ESLint.Args)
	assert.True(t, s.Resolver.CompactExtends)
	assert.Equal(t, 45*time.Second, s.Timeout)
}

func TestLoad_YmlFallbackName(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, ".hooklint.yml", "color: never\n")

	s, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "never", s.Color)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, ".hooklint.yaml", "color: never\n")
	explicit := writeSettings(t, t.TempDir(), "custom.yaml", "color: always\n")

	s, err := Load(LoadOptions{File: explicit, Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "always", s.Color)
	assert.Equal(t, explicit, s.Source)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, ".hooklint.yaml", "git: [unclosed\n")

	_, err := Load(LoadOptions{Dir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading settings file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, ".hooklint.yaml", "git:\n  binary: /usr/bin/git\ncolor: never\n")

	t.Setenv("HOOKLINT_GIT__BINARY", "/usr/local/bin/git")
	t.Setenv("HOOKLINT_FALLBACK_CONFIG", "/etc/base.yml")
	t.Setenv("HOOKLINT_ESLINT__LEGACY_ENV", "false")
	t.Setenv("HOOKLINT_TIMEOUT", "2m")

	s, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/git", s.Git.Binary)
	assert.Equal(t, "/etc/base.yml", s.FallbackConfig)
	assert.False(t, s.ESLint.LegacyEnv)
	assert.Equal(t, 2*time.Minute, s.Timeout)
	assert.Equal(t, "never", s.Color, "file value survives when env does not set it")
}

func TestLoad_ChangedFlagsOverrideEnv(t *testing.T) {
	t.Setenv("HOOKLINT_COLOR", "never")
	t.Setenv("HOOKLINT_LOG__LEVEL", "error")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{
		"--color", "always",
		"--git-dir", "/repo",
		"--eslint-arg", "--rule", "--eslint-arg", "semi: error",
		"--compact-extends",
		"--timeout", "10s",
		"--resolve-only",
	}))

	s, err := Load(LoadOptions{Dir: t.TempDir(), Flags: fs})
	require.NoError(t, err)

	assert.Equal(t, "always", s.Color)
	assert.Equal(t, "error", s.Log.Level, "unchanged flag must not override env")
	assert.Equal(t, "/repo", s.Git.Dir)
	assert.Equal(t, []string{"--rule", "semi: error"}, s.ESLint.Args)
	assert.True(t, s.Resolver.CompactExtends)
	assert.Equal(t, 10*time.Second, s.Timeout)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad color", "color: rainbow\n", "color must be one of"},
		{"bad level", "log:\n  level: verbose\n", "log.level must be one of"},
		{"bad exporter", "telemetry:\n  traces: zipkin\n", "telemetry.traces must be one of"},
		{"textfile without path", "telemetry:\n  metrics: textfile\n", "telemetry.textfile is required"},
		{"empty git binary", "git:\n  binary: \"\"\n", "git.binary is required"},
		{"negative timeout", "timeout: -5s\n", "timeout must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeSettings(t, dir, ".hooklint.yaml", tt.content)

			_, err := Load(LoadOptions{Dir: dir})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"HOOKLINT_COLOR":              "color",
		"HOOKLINT_FALLBACK_CONFIG":    "fallback_config",
		"HOOKLINT_GIT__DIR":           "git.dir",
		"HOOKLINT_TELEMETRY__METRICS": "telemetry.metrics",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestSettings_LoggingConfig(t *testing.T) {
	s := &Settings{Log: LogSettings{Level: "debug", JSON: true, Dir: "/var/log/hooklint"}}

	cfg := s.LoggingConfig()

	assert.Equal(t, logging.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.Equal(t, "/var/log/hooklint", cfg.LogDir)
	assert.Equal(t, "hooklint", cfg.Service)
}

func TestSettings_TelemetryConfig(t *testing.T) {
	s := &Settings{Telemetry: TelemetrySettings{
		Traces:       "otlp",
		Metrics:      "textfile",
		Textfile:     "/var/lib/node_exporter/hooklint.prom",
		OTLPEndpoint: "collector:4317",
	}}

	cfg := s.TelemetryConfig("1.2.3")

	assert.Equal(t, telemetry.ExporterOTLP, cfg.TraceExporter)
	assert.Equal(t, telemetry.ExporterTextfile, cfg.MetricExporter)
	assert.Equal(t, "/var/lib/node_exporter/hooklint.prom", cfg.TextfilePath)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
	assert.Equal(t, "1.2.3", cfg.ServiceVersion)
	assert.Equal(t, "hooklint", cfg.ServiceName)
}
