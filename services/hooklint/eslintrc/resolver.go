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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/hooklint/pkg/logging"
	"github.com/AleutianAI/hooklint/services/hooklint/git"
)

var tracer = otel.Tracer("hooklint.eslintrc")

// CandidateNames are the project config paths looked up at the repository
// root, in priority order.
var CandidateNames = []string{".eslintrc", ".eslintrc.yml", ".eslintrc.yaml"}

// Resolver picks and merges the ESLint config for a commit.
type Resolver struct {
	store   git.BlobFetcher
	compact bool
	logger  *logging.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCompactExtends drops the nil placeholder that MergeExtends otherwise
// appends when the project config has no extends.
func WithCompactExtends(compact bool) Option {
	return func(r *Resolver) {
		r.compact = compact
	}
}

// WithLogger sets the logger used for candidate lookup diagnostics.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver reading project configs from store.
func NewResolver(store git.BlobFetcher, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the effective config for commit.
//
// # Description
//
// Looks up CandidateNames at the commit. The first one that exists and
// parses to a mapping is merged with the fallback path (see MergeExtends);
// the fallback file itself is not read in that case. A candidate that
// exists but holds an empty or null document ends the search. When no
// candidate qualifies the fallback file is loaded from the local
// filesystem and returned unmodified.
//
// A fallback path naming a local file is made absolute against the
// working directory before it is merged, the same way LoadFile reads it.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - commit: Commit reference. Must not be empty.
//   - fallbackPath: Local path of the organisation-wide config. Must not be empty.
//
// # Outputs
//
//   - Config: Freshly built config owned by the caller.
//   - error: ErrFallbackConfig when the fallback is needed and unusable,
//     ErrInvalidInput for bad arguments, ctx.Err() when cancelled during the
//     lookup. Project config failures are never returned.
func (r *Resolver) Resolve(ctx context.Context, commit, fallbackPath string) (Config, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if commit == "" {
		return nil, fmt.Errorf("%w: commit must not be empty", ErrInvalidInput)
	}
	if fallbackPath == "" {
		return nil, fmt.Errorf("%w: fallback config path must not be empty", ErrInvalidInput)
	}

	ctx, span := tracer.Start(ctx, "Resolver.Resolve",
		trace.WithAttributes(
			attribute.String("eslintrc.commit", commit),
			attribute.String("eslintrc.fallback", fallbackPath),
		),
	)
	defer span.End()

	project, name, ok := r.Discover(ctx, commit)
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled")
		return nil, err
	}
	if ok {
		span.SetAttributes(attribute.String("eslintrc.source", name))
		r.logger.Info("project config found", "commit", commit, "candidate", name)
		return MergeExtends(project, localFallback(fallbackPath), r.compact), nil
	}

	span.SetAttributes(attribute.String("eslintrc.source", "fallback"))
	cfg, err := LoadFile(fallbackPath)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFallbackConfig, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fallback config unavailable")
		r.logger.Error("fallback config unusable", "path", fallbackPath, "error", err)
		return nil, err
	}

	r.logger.Info("using fallback config", "commit", commit, "path", fallbackPath)
	return cfg, nil
}

// Discover returns the first project config at commit that parses to a
// mapping, along with its candidate name.
//
// Missing blobs, YAML errors and non-mapping documents are skipped and
// logged at debug level. An existing candidate with an empty or null
// document stops the search and reports no project config.
func (r *Resolver) Discover(ctx context.Context, commit string) (Config, string, bool) {
	for _, name := range CandidateNames {
		if ctx.Err() != nil {
			return nil, "", false
		}

		data, err := r.store.FetchBlob(ctx, commit, name)
		if err != nil {
			r.logger.Debug("project config candidate unavailable", "candidate", name, "error", err)
			continue
		}

		cfg, err := Parse(data)
		if errors.Is(err, ErrEmptyConfig) {
			r.logger.Debug("project config empty, search stopped", "candidate", name)
			return nil, "", false
		}
		if err != nil {
			r.logger.Debug("project config candidate skipped", "candidate", name, "error", err)
			continue
		}
		return cfg, name, true
	}
	return nil, "", false
}

// localFallback returns fallbackPath made absolute when it names a regular
// file relative to the working directory, and fallbackPath otherwise.
func localFallback(fallbackPath string) string {
	abs, err := filepath.Abs(fallbackPath)
	if err != nil {
		return fallbackPath
	}
	if info, err := os.Stat(abs); err != nil || !info.Mode().IsRegular() {
		return fallbackPath
	}
	return abs
}

// MergeExtends returns a copy of project whose extends begins with
// fallbackPath.
//
// # Description
//
// A sequence gets fallbackPath prepended. Any other value (scalar,
// mapping) becomes [fallbackPath, value]. An absent or null extends
// becomes [fallbackPath, nil], or [fallbackPath] when compact is set.
// The project config is never modified.
func MergeExtends(project Config, fallbackPath string, compact bool) Config {
	merged := project.Clone()
	if merged == nil {
		merged = Config{}
	}

	var extends []any
	switch ext := merged[ExtendsKey].(type) {
	case []any:
		extends = make([]any, 0, len(ext)+1)
		extends = append(extends, fallbackPath)
		extends = append(extends, ext...)
	case []string:
		extends = make([]any, 0, len(ext)+1)
		extends = append(extends, fallbackPath)
		for _, e := range ext {
			extends = append(extends, e)
		}
	case nil:
		if compact {
			extends = []any{fallbackPath}
		} else {
			extends = []any{fallbackPath, nil}
		}
	default:
		extends = []any{fallbackPath, ext}
	}

	merged[ExtendsKey] = extends
	return merged
}
