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

import "errors"

var (
	// ErrFallbackConfig indicates the fallback config could not be read or
	// parsed. Always fatal: without it there is no baseline to lint against.
	ErrFallbackConfig = errors.New("fallback config unavailable")

	// ErrEmptyConfig indicates a YAML document with no content.
	ErrEmptyConfig = errors.New("config is empty")

	// ErrNotMapping indicates a YAML document whose root is not a mapping.
	ErrNotMapping = errors.New("config is not a mapping")

	// ErrInvalidYAML indicates a YAML syntax error.
	ErrInvalidYAML = errors.New("invalid yaml")

	// ErrInvalidInput indicates a nil context or empty argument.
	ErrInvalidInput = errors.New("invalid input")
)
