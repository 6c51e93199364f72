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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for lint operations.
var (
	tracer = otel.Tracer("hooklint.lint")
	meter  = otel.Meter("hooklint.lint")
)

// Metrics for lint runs.
var (
	runDuration     metric.Float64Histogram
	runsTotal       metric.Int64Counter
	errorsFound     metric.Int64Counter
	warningsDropped metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		runDuration, err = meter.Float64Histogram(
			"hooklint_run_duration_seconds",
			metric.WithDescription("Duration of a commit-scoped lint run"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runsTotal, err = meter.Int64Counter(
			"hooklint_runs_total",
			metric.WithDescription("Total number of lint runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		errorsFound, err = meter.Int64Counter(
			"hooklint_errors_found_total",
			metric.WithDescription("Total number of error diagnostics reported"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		warningsDropped, err = meter.Int64Counter(
			"hooklint_warnings_dropped_total",
			metric.WithDescription("Total number of non-error diagnostics dropped"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startRunSpan creates a span for a lint run.
func startRunSpan(ctx context.Context, commit, filePath string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Runner.Run",
		trace.WithAttributes(
			attribute.String("lint.commit", commit),
			attribute.String("lint.file_path", filePath),
		),
	)
}

// setRunSpanResult sets the result attributes on a run span.
func setRunSpanResult(span trace.Span, errorCount, droppedCount int) {
	span.SetAttributes(
		attribute.Int("lint.error_count", errorCount),
		attribute.Int("lint.dropped_count", droppedCount),
	)
}

// recordRunMetrics records metrics for a lint run.
//
// outcome is "clean", "findings" or "fatal".
func recordRunMetrics(ctx context.Context, outcome string, duration time.Duration, errorCount, droppedCount int) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	runDuration.Record(ctx, duration.Seconds(), attrs)
	runsTotal.Add(ctx, 1, attrs)

	if outcome != outcomeFatal {
		errorsFound.Add(ctx, int64(errorCount))
		warningsDropped.Add(ctx, int64(droppedCount))
	}
}

const (
	outcomeClean    = "clean"
	outcomeFindings = "findings"
	outcomeFatal    = "fatal"
)
