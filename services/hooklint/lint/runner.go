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
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/hooklint/pkg/logging"
	"github.com/AleutianAI/hooklint/services/hooklint/eslintrc"
	"github.com/AleutianAI/hooklint/services/hooklint/git"
)

// Runner checks one file at one commit.
//
// Thread Safety: Safe for concurrent use after construction.
type Runner struct {
	resolver  *eslintrc.Resolver
	store     git.BlobFetcher
	linter    Linter
	formatter *Formatter
	logger    *logging.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithFormatter sets the formatter. Default PlainFormatter.
func WithFormatter(f *Formatter) Option {
	return func(r *Runner) {
		if f != nil {
			r.formatter = f
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner.
//
// Description:
//
//	Wires the config resolver, the object store the source is read from
//	and the linter. The resolver normally shares the same store.
//
// Inputs:
//
//	resolver - Config resolver
//	store - Source of the file to lint
//	linter - Linter implementation (ESLint in production)
//	opts - Optional formatter and logger
//
// Outputs:
//
//	*Runner - Ready-to-use runner
func NewRunner(resolver *eslintrc.Resolver, store git.BlobFetcher, linter Linter, opts ...Option) *Runner {
	r := &Runner{
		resolver:  resolver,
		store:     store,
		linter:    linter,
		formatter: PlainFormatter(),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Check lints filePath as recorded at commit.
//
// Description:
//
//	Resolves the config, fetches the blob, lints it and keeps only
//	error-severity diagnostics in emission order.
//
// Inputs:
//
//	ctx - Context for cancellation and deadline. Must not be nil.
//	commit - Commit reference. Must not be empty.
//	filePath - Repository-relative path. Must not be empty.
//	fallbackPath - Local fallback config path. Must not be empty.
//
// Outputs:
//
//	*Result - Errors and their formatted lines (both empty, never nil, when clean)
//	error - eslintrc.ErrFallbackConfig, ErrSourceUnavailable, *LinterError,
//	        or ErrInvalidInput. A non-nil error means no diagnostics.
func (r *Runner) Check(ctx context.Context, commit, filePath, fallbackPath string) (*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if commit == "" || filePath == "" || fallbackPath == "" {
		return nil, fmt.Errorf("%w: commit, file and fallback config are required", ErrInvalidInput)
	}

	start := time.Now()
	ctx, span := startRunSpan(ctx, commit, filePath)
	defer span.End()

	fail := func(err error) (*Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		recordRunMetrics(ctx, outcomeFatal, time.Since(start), 0, 0)
		r.logger.Error("lint run failed", "commit", commit, "file", filePath, "error", err)
		return nil, err
	}

	cfg, err := r.resolver.Resolve(ctx, commit, fallbackPath)
	if err != nil {
		return fail(err)
	}

	source, err := r.store.FetchBlob(ctx, commit, filePath)
	if err != nil {
		return fail(fmt.Errorf("%w: %s at %s: %w", ErrSourceUnavailable, filePath, commit, err))
	}

	name, err := git.NormalizePath(filePath)
	if err != nil {
		return fail(err)
	}

	diags, err := r.linter.Lint(ctx, cfg, source, name)
	if err != nil {
		return fail(err)
	}

	errs := ErrorsOnly(diags)
	dropped := len(diags) - len(errs)

	result := &Result{
		Commit:       commit,
		File:         filePath,
		Errors:       errs,
		WarningCount: dropped,
		Duration:     time.Since(start),
		Lines:        r.formatter.FormatAll(filePath, errs),
	}

	outcome := outcomeClean
	if !result.Passed() {
		outcome = outcomeFindings
	}
	setRunSpanResult(span, len(errs), dropped)
	recordRunMetrics(ctx, outcome, result.Duration, len(errs), dropped)

	r.logger.Info("lint completed",
		"commit", commit,
		"file", filePath,
		"errors", len(errs),
		"dropped", dropped,
		"duration", result.Duration,
	)
	return result, nil
}

// Run lints filePath at commit and returns one formatted line per error.
//
// An empty (non-nil) slice means the file is clean. Warnings never appear.
func (r *Runner) Run(ctx context.Context, commit, filePath, fallbackPath string) ([]string, error) {
	result, err := r.Check(ctx, commit, filePath, fallbackPath)
	if err != nil {
		return nil, err
	}
	return result.Lines, nil
}
