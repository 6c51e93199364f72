// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package eslintrc resolves the ESLint configuration for a commit.
//
// A repository may carry its own YAML config at the root. When it does,
// the organisation-wide fallback config is forced to the front of its
// extends list so every project inherits the common minimum. When it does
// not, the fallback is used as-is.
//
// # Resolution
//
//	.eslintrc  ──┐
//	.eslintrc.yml├─ first blob that parses to a mapping wins
//	.eslintrc.yaml┘
//	      │ found                         │ none
//	      ▼                               ▼
//	extends = [fallback, ...]       LoadFile(fallback)
//
// # Extends Merge
//
//	| project extends  | result                          |
//	|------------------|---------------------------------|
//	| [a, b]           | [fallback, a, b]                |
//	| "a"              | [fallback, "a"]                 |
//	| absent / null    | [fallback, nil]  ([fallback] when compacting) |
//	| {mapping}        | [fallback, {mapping}]           |
//
// Only YAML is understood and only the repository root is searched.
// Hierarchical configs and JSON/package.json configs are not supported.
//
// # Thread Safety
//
// Resolver holds no mutable state and is safe for concurrent use. Config
// values are plain maps; use Clone before mutating a shared one.
package eslintrc
