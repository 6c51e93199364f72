// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry wires OpenTelemetry tracing and metrics for hooklint.
//
// Hooks are short-lived processes, so nothing is served or scraped: data is
// pushed (OTLP), printed (stdout exporters, written to stderr), or left on
// disk for node_exporter's textfile collector.
//
// # Exporters
//
//	| Signal  | Name     | Destination                          |
//	|---------|----------|--------------------------------------|
//	| traces  | otlp     | OTLP/gRPC collector                  |
//	| traces  | stdout   | Config.Output (stderr)               |
//	| metrics | stdout   | Config.Output (stderr), on shutdown  |
//	| metrics | textfile | Config.TextfilePath, on shutdown     |
//
// "none" disables a signal; the otel globals then stay no-op.
package telemetry
