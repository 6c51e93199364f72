// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AleutianAI/hooklint/pkg/logging"
	"github.com/AleutianAI/hooklint/pkg/ux"
	"github.com/AleutianAI/hooklint/services/hooklint/config"
	"github.com/AleutianAI/hooklint/services/hooklint/eslintrc"
	"github.com/AleutianAI/hooklint/services/hooklint/git"
	"github.com/AleutianAI/hooklint/services/hooklint/lint"
	"github.com/AleutianAI/hooklint/services/hooklint/telemetry"
)

// =============================================================================
// CONSTANTS AND TYPES
// =============================================================================

// Exit codes.
const (
	ExitClean = 0

	// ExitMaxFindings caps the findings count so it never wraps modulo 256
	// or collides with the codes below.
	ExitMaxFindings = 250

	ExitUsage = 254
	ExitFatal = 255
)

// errFallbackRequired is returned when neither the third argument nor the
// fallback_config setting names a fallback config.
var errFallbackRequired = errors.New("fallback config is required: pass it as the third argument or set fallback_config")

// usageError marks errors caused by how hooklint was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func asUsage(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// cliOptions holds flags that change what the command does rather than how
// it is configured. Everything else is read through config.Load.
type cliOptions struct {
	settingsFile string
	resolveOnly  bool
	jsonOutput   bool
}

// invocation carries the writers and the computed exit code for one run.
type invocation struct {
	stdout   io.Writer
	stderr   io.Writer
	opts     cliOptions
	exitCode int
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

func newRootCmd(inv *invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooklint <commit> <file> [<fallback-config>]",
		Short: "Lint a file as recorded at a git commit",
		Long: `Lint one file exactly as it exists at a commit, using the project's
.eslintrc, .eslintrc.yml or .eslintrc.yaml from the same commit layered on
top of a fallback config. Without a project config the fallback is used as is.

Only error-severity diagnostics are reported; warnings are dropped.

Examples:
  hooklint HEAD src/app.js /etc/hooklint/base.yml
  hooklint "$newrev" lib/index.js --json
  hooklint --resolve-only HEAD src/app.js base.yml

Settings are read from .hooklint.yaml (or --settings), HOOKLINT_* env vars
and flags, in increasing order of precedence.

Exit Codes:
  0       = No error diagnostics
  1..250  = Number of error diagnostics (capped at 250)
  254     = Usage error (bad arguments, flags or settings)
  255     = Fatal error (unknown commit, missing fallback config, file not
            at commit, linter missing or crashed)`,
		Args:          usageArgs(cobra.RangeArgs(2, 3)),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return inv.execute(cmd, args)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return asUsage(err)
	})
	registerFlags(cmd.Flags(), &inv.opts)
	return cmd
}

// registerFlags defines every flag. Flag defaults only document the
// setting; config.Load applies a flag only when it was set explicitly.
func registerFlags(fs *pflag.FlagSet, opts *cliOptions) {
	fs.StringVar(&opts.settingsFile, "settings", "",
		"Settings file (default: .hooklint.yaml in the working directory)")
	fs.BoolVar(&opts.resolveOnly, "resolve-only", false,
		"Print the resolved ESLint config as YAML and exit")
	fs.BoolVar(&opts.jsonOutput, "json", false,
		"Also print the result as JSON on stdout")

	fs.String("fallback-config", "", "Fallback config used when the third argument is omitted")
	fs.String("git", config.DefaultGitBinary, "git executable")
	fs.String("git-dir", "", "Repository directory (git -C); default is the working directory")
	fs.String("eslint", config.DefaultESLint, "eslint executable")
	fs.StringArray("eslint-arg", nil, "Extra argument passed to eslint (repeatable)")
	fs.String("eslint-dir", "", "Working directory for eslint (plugin resolution)")
	fs.Bool("compact-extends", false, "Omit the nil extends placeholder when the project config has no extends")
	fs.Duration("timeout", 0, "Overall deadline, e.g. 30s (0 = none)")
	fs.String("color", config.DefaultColor, "Colour diagnostics: auto, always or never")
	fs.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	fs.Bool("log-json", false, "Log JSON to stderr")
	fs.String("log-dir", "", "Also write JSON logs to this directory")
	fs.String("traces", config.DefaultExporter, "Trace exporter: none, stdout or otlp")
	fs.String("metrics", config.DefaultExporter, "Metric exporter: none, stdout or textfile")
	fs.String("metrics-textfile", "", "Prometheus textfile path for --metrics textfile")
	fs.String("otlp-endpoint", config.DefaultOTLPEndpoint, "OTLP gRPC endpoint for --traces otlp")
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return asUsage(validate(cmd, args))
	}
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// run executes hooklint with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	inv := &invocation{stdout: stdout, stderr: stderr}

	cmd := newRootCmd(inv)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return inv.exitCode
	}

	fmt.Fprintf(stderr, "hooklint: %v\n", err)

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "Usage: %s\nRun 'hooklint --help' for details.\n", cmd.Use)
		return ExitUsage
	}
	return ExitFatal
}

func (inv *invocation) execute(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(config.LoadOptions{
		File:  inv.opts.settingsFile,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return asUsage(err)
	}

	commit, file := args[0], args[1]
	fallback := settings.FallbackConfig
	if len(args) == 3 {
		fallback = args[2]
	}
	if fallback == "" {
		return asUsage(errFallbackRequired)
	}

	logCfg := settings.LoggingConfig()
	logCfg.Output = inv.stderr
	rootLogger := logging.New(logCfg)
	defer rootLogger.Close()
	logger := rootLogger.With("run_id", uuid.NewString())

	ctx := cmd.Context()

	telCfg := settings.TelemetryConfig(version)
	telCfg.Output = inv.stderr
	shutdown, err := telemetry.Init(ctx, telCfg)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	logger.Debug("hooklint starting",
		"commit", commit,
		"file", file,
		"fallback", fallback,
		"settings", settings.Source,
	)

	store := git.NewStore(
		git.WithBinary(settings.Git.Binary),
		git.WithDir(settings.Git.Dir),
	)

	// Pin the reference once so the config lookup and the source read see
	// the same commit even if a ref moves mid-run.
	sha, err := store.ResolveCommit(ctx, commit)
	if err != nil {
		return fmt.Errorf("resolve commit %q: %w", commit, err)
	}
	logger = logger.With("commit_sha", sha)

	resolver := eslintrc.NewResolver(store,
		eslintrc.WithCompactExtends(settings.Resolver.CompactExtends),
		eslintrc.WithLogger(logger),
	)

	if inv.opts.resolveOnly {
		return inv.printResolved(ctx, resolver, sha, fallback)
	}

	// Validated by config.Load.
	mode, _ := ux.ParseColorMode(settings.Color)

	linter := lint.NewESLint(
		lint.WithCommand(settings.ESLint.Command),
		lint.WithArgs(settings.ESLint.Args...),
		lint.WithLegacyEnv(settings.ESLint.LegacyEnv),
		lint.WithWorkDir(settings.ESLint.WorkDir),
	)
	runner := lint.NewRunner(resolver, store, linter,
		lint.WithFormatter(lint.NewFormatter(ux.NewDiagnosticStyles(inv.stderr, mode))),
		lint.WithLogger(logger),
	)

	result, err := runner.Check(ctx, sha, file, fallback)
	if err != nil {
		return err
	}

	if inv.opts.jsonOutput {
		enc := json.NewEncoder(inv.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("write json result: %w", err)
		}
	}
	if len(result.Lines) > 0 {
		fmt.Fprintln(inv.stderr, strings.Join(result.Lines, "\n"))
	}

	inv.exitCode = findingsExitCode(len(result.Errors))
	return nil
}

func (inv *invocation) printResolved(ctx context.Context, resolver *eslintrc.Resolver, commit, fallback string) error {
	cfg, err := resolver.Resolve(ctx, commit, fallback)
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("marshal resolved config: %w", err)
	}
	if _, err := inv.stdout.Write(data); err != nil {
		return fmt.Errorf("write resolved config: %w", err)
	}
	return nil
}

// findingsExitCode maps an error count to an exit code.
func findingsExitCode(n int) int {
	switch {
	case n <= 0:
		return ExitClean
	case n > ExitMaxFindings:
		return ExitMaxFindings
	default:
		return n
	}
}
