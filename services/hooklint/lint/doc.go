// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lint runs ESLint against a file as recorded at a commit.
//
// # Architecture
//
//	commit, file, fallback
//	        │
//	        ├─ eslintrc.Resolver.Resolve ──► Config
//	        ├─ git.BlobFetcher.FetchBlob ──► source bytes
//	        ▼
//	Linter.Lint(config, source) ──► []Diagnostic
//	        │
//	        ▼
//	ErrorsOnly ──► Formatter ──► "file:line:col - message [rule]"
//
// The source is never read from the working tree. The linter sees it on
// stdin with the resolved config as its only configuration (ambient
// .eslintrc discovery is disabled).
//
// # Severity Mapping
//
//	| ESLint severity | Our Severity    | Action        |
//	|-----------------|-----------------|---------------|
//	| 2               | SeverityError   | Reported      |
//	| 1               | SeverityWarning | Counted, dropped |
//	| 0               | SeverityInfo    | Dropped       |
//
// # Usage
//
//	runner := lint.NewRunner(resolver, store, lint.NewESLint())
//	lines, err := runner.Run(ctx, "HEAD", "src/index.js", "/etc/eslint/base.yml")
//	if err != nil {
//	    // fatal: config, content or linter failure
//	}
//	// len(lines) is the number of errors
//
// # Thread Safety
//
// Runner, ESLint and Formatter are immutable after construction and safe
// for concurrent use.
package lint
