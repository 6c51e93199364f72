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
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/AleutianAI/hooklint/services/hooklint/eslintrc"
)

// ESLint implements Linter by running the eslint CLI.
//
// # Description
//
// The resolved config is written to a temporary YAML file and passed with
// --no-eslintrc so no other config on disk is consulted. Source is fed on
// stdin with --stdin-filename so ESLint picks parsers and reports by path
// without the file existing locally.
//
// # Thread Safety
//
// Safe for concurrent use; every call uses its own temp file and process.
type ESLint struct {
	command   string
	args      []string
	legacyEnv bool
	workDir   string
}

// ESLintOption configures an ESLint linter.
type ESLintOption func(*ESLint)

// WithCommand sets the eslint executable. Default "eslint".
func WithCommand(command string) ESLintOption {
	return func(e *ESLint) {
		if command != "" {
			e.command = command
		}
	}
}

// WithArgs appends extra arguments before the stdin flags.
func WithArgs(args ...string) ESLintOption {
	return func(e *ESLint) {
		e.args = append(e.args, args...)
	}
}

// WithLegacyEnv controls ESLINT_USE_FLAT_CONFIG=false, which ESLint 8.57+
// and 9 need to accept an eslintrc-style --config. Default true.
func WithLegacyEnv(enabled bool) ESLintOption {
	return func(e *ESLint) {
		e.legacyEnv = enabled
	}
}

// WithWorkDir sets the process working directory, which is also where
// ESLint resolves plugins and shareable configs from.
func WithWorkDir(dir string) ESLintOption {
	return func(e *ESLint) {
		e.workDir = dir
	}
}

// NewESLint creates an ESLint linter.
func NewESLint(opts ...ESLintOption) *ESLint {
	e := &ESLint{
		command:   "eslint",
		legacyEnv: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lint implements Linter.
//
// # Outputs
//
//   - []Diagnostic: All messages (any severity) in emission order.
//   - error: *LinterError wrapping ErrLinterNotInstalled, ErrLinterTimeout,
//     ErrLinterFailed or ErrParseOutput; ErrInvalidInput for bad arguments.
func (e *ESLint) Lint(ctx context.Context, cfg eslintrc.Config, source []byte, filename string) ([]Diagnostic, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: filename must not be empty", ErrInvalidInput)
	}

	configPath, err := e.writeConfig(cfg)
	if err != nil {
		return nil, err
	}
	defer os.Remove(configPath)

	stdout, err := e.execute(ctx, e.buildArgs(configPath, filename), source)
	if err != nil {
		return nil, err
	}

	diags, err := parseESLintOutput(stdout, filename)
	if err != nil {
		return nil, NewLinterError(e.command, 0, err)
	}
	return diags, nil
}

// buildArgs assembles the eslint argument list.
func (e *ESLint) buildArgs(configPath, filename string) []string {
	args := []string{"--no-eslintrc", "--config", configPath, "--format", "json"}
	args = append(args, e.args...)
	return append(args, "--stdin", "--stdin-filename", filename)
}

// writeConfig writes cfg to a temp file and returns its path.
func (e *ESLint) writeConfig(cfg eslintrc.Config) (string, error) {
	data, err := prepareConfig(cfg, e.baseDir()).Marshal()
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "hooklint-*.yml")
	if err != nil {
		return "", fmt.Errorf("create temp config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp config: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp config: %w", err)
	}
	return f.Name(), nil
}

func (e *ESLint) baseDir() string {
	if e.workDir != "" {
		return e.workDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// execute runs eslint and returns stdout.
func (e *ESLint) execute(ctx context.Context, args []string, source []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.command, args...)
	cmd.Dir = e.workDir
	cmd.Stdin = bytes.NewReader(source)
	if e.legacyEnv {
		cmd.Env = append(os.Environ(), "ESLINT_USE_FLAT_CONFIG=false")
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := strings.TrimSpace(stderr.String())

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, NewLinterError(e.command, -1, ErrLinterTimeout).WithOutput(output)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err == nil {
		return stdout.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, NewLinterError(e.command, -1, ErrLinterNotInstalled).WithOutput(err.Error())
		}
		return nil, NewLinterError(e.command, -1, fmt.Errorf("%w: %v", ErrLinterFailed, err)).WithOutput(output)
	}

	// Exit 1 means "lint errors found" and still carries the JSON report.
	// Exit 2 is a configuration or internal error.
	if exitErr.ExitCode() == 1 && stdout.Len() > 0 {
		return stdout.Bytes(), nil
	}
	return nil, NewLinterError(e.command, exitErr.ExitCode(), ErrLinterFailed).WithOutput(output)
}

// prepareConfig returns the copy of cfg that is written for ESLint.
//
// Nil extends entries are dropped because ESLint rejects them, and
// entries naming existing local files are made absolute against baseDir
// since the temp file lives elsewhere. cfg itself is not modified.
func prepareConfig(cfg eslintrc.Config, baseDir string) eslintrc.Config {
	out := cfg.Clone()
	if out == nil {
		return eslintrc.Config{}
	}

	entries, ok := out.Extends()
	if !ok {
		return out
	}

	rewritten := make([]any, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if s, isString := entry.(string); isString {
			entry = absoluteIfLocalFile(s, baseDir)
		}
		rewritten = append(rewritten, entry)
	}

	if len(rewritten) == 0 {
		delete(out, eslintrc.ExtendsKey)
	} else {
		out[eslintrc.ExtendsKey] = rewritten
	}
	return out
}

func absoluteIfLocalFile(entry, baseDir string) string {
	candidate := entry
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}
	info, err := os.Stat(candidate)
	if err != nil || !info.Mode().IsRegular() {
		return entry
	}
	if abs, err := filepath.Abs(candidate); err == nil {
		return abs
	}
	return candidate
}
