// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hooklint.git")

// BlobFetcher reads a file's content as recorded at a commit.
type BlobFetcher interface {
	// FetchBlob returns the bytes of path at commit.
	//
	// Returns an error wrapping ErrBlobNotFound when path does not exist
	// at the commit, names a tree, or the commit cannot be resolved.
	FetchBlob(ctx context.Context, commit, path string) ([]byte, error)
}

// =============================================================================
// Store
// =============================================================================

// Store implements BlobFetcher using the git command line.
//
// # Description
//
// Each call spawns one git process. Nothing is cached: hooks run once per
// push and the object store is already the cache.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type Store struct {
	binary string
	dir    string
}

// Option configures a Store.
type Option func(*Store)

// WithBinary sets the git executable. Default "git" (resolved on PATH).
func WithBinary(binary string) Option {
	return func(s *Store) {
		if binary != "" {
			s.binary = binary
		}
	}
}

// WithDir runs git with -C dir. Empty means the process working directory,
// which is what git sets up for hooks (GIT_DIR is inherited).
func WithDir(dir string) Option {
	return func(s *Store) {
		s.dir = dir
	}
}

// NewStore creates a git CLI backed store.
func NewStore(opts ...Option) *Store {
	s := &Store{binary: "git"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchBlob returns the content of path at commit.
//
// # Description
//
// Runs `git cat-file blob <commit>:<path>`. cat-file refuses trees, so a
// directory path fails the same way a missing path does.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - commit: Any revision git understands (SHA, ref, HEAD~1). Must not be empty.
//   - path: Repository-relative path. Leading "./" and "/" are stripped.
//
// # Outputs
//
//   - []byte: Raw blob content (may be empty for an empty file).
//   - error: Wraps ErrBlobNotFound, ErrGitNotInstalled or ErrInvalidInput.
func (s *Store) FetchBlob(ctx context.Context, commit, filePath string) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if commit == "" {
		return nil, fmt.Errorf("%w: commit must not be empty", ErrInvalidInput)
	}
	clean, err := NormalizePath(filePath)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "Store.FetchBlob",
		trace.WithAttributes(
			attribute.String("git.commit", commit),
			attribute.String("git.path", clean),
		),
	)
	defer span.End()

	out, err := s.run(ctx, ErrBlobNotFound, "cat-file", "blob", commit+":"+clean)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("git.blob_size", len(out)))
	return out, nil
}

// ResolveCommit resolves a revision to a full commit SHA.
//
// Uses `git rev-parse --verify --quiet <commit>^{commit}` so tags are
// peeled and trees/blobs are rejected.
func (s *Store) ResolveCommit(ctx context.Context, commit string) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if commit == "" {
		return "", fmt.Errorf("%w: commit must not be empty", ErrInvalidInput)
	}

	out, err := s.run(ctx, ErrCommitNotFound, "rev-parse", "--verify", "--quiet", commit+"^{commit}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// run executes git and returns stdout.
//
// A non-zero exit is classified as notFound; callers choose the sentinel
// that fits the subcommand.
func (s *Store) run(ctx context.Context, notFound error, args ...string) ([]byte, error) {
	argv := args
	if s.dir != "" {
		argv = append([]string{"-C", s.dir}, args...)
	}

	cmd := exec.CommandContext(ctx, s.binary, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	cmdErr := &CommandError{
		Args:     args,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		cmdErr.Err = ctx.Err()
	case errors.As(err, &exitErr):
		cmdErr.ExitCode = exitErr.ExitCode()
		cmdErr.Err = notFound
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		cmdErr.Err = fmt.Errorf("%w: %v", ErrGitNotInstalled, err)
	default:
		cmdErr.Err = err
	}
	return nil, cmdErr
}

// NormalizePath converts a user-supplied path into the form git expects in
// a <rev>:<path> expression.
//
// "./a/b" and "/a/b" become "a/b". Paths that are empty, resolve to the
// repository root, or escape it with ".." are rejected. Backslashes are
// not separators in git paths and are left untouched.
func NormalizePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("%w: path must not be empty", ErrInvalidInput)
	}

	clean := strings.TrimLeft(path.Clean("/"+p), "/")
	if clean == "" {
		return "", fmt.Errorf("%w: path %q names the repository root", ErrInvalidInput, p)
	}
	if rel := path.Clean(p); rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: path %q is outside the repository", ErrInvalidInput, p)
	}
	return clean, nil
}
