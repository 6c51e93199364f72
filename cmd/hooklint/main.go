// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command hooklint lints one JavaScript file as recorded at one git commit.
//
// It is meant to be called from pre-receive and pre-commit hooks:
//
//	hooklint <commit> <file> [<fallback-config>]
//
// Error diagnostics are printed to stderr and their count becomes the exit
// code. See `hooklint --help` for the exit code table.
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
