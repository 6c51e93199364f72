// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for hooklint.
package ux

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Hook console palette. Git forwards hook stderr verbatim to the pushing
// client, so the basic 16-colour ANSI set is used rather than true colour.
var (
	ColorLocation = lipgloss.Color("2") // green - file:line:col
	ColorMessage  = lipgloss.Color("1") // red - diagnostic text
	ColorRule     = lipgloss.Color("4") // blue - rule identifier
)

// =============================================================================
// COLOR MODE
// =============================================================================

// ColorMode controls whether styled output emits ANSI escapes.
type ColorMode int

const (
	// ColorAuto colours only when the destination is a terminal.
	ColorAuto ColorMode = iota

	// ColorAlways colours regardless of the destination.
	ColorAlways

	// ColorNever never colours.
	ColorNever
)

// String returns the flag spelling of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses "auto", "always" or "never" (case-insensitive).
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "force":
		return ColorAlways, nil
	case "never", "none", "off":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q", s)
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// DIAGNOSTIC STYLES
// =============================================================================

// DiagnosticStyles holds one style per segment of a formatted diagnostic.
//
// Styles are bound to a renderer for a specific writer, so the same
// DiagnosticStyles must not be shared between stderr and a captured buffer.
type DiagnosticStyles struct {
	Location lipgloss.Style
	Message  lipgloss.Style
	Rule     lipgloss.Style
}

// NewDiagnosticStyles creates segment styles for output written to w.
//
// Description:
//
//	Builds a lipgloss renderer bound to w and pins its colour profile
//	according to mode. In ColorAuto, non-terminal writers (pipes, files,
//	buffers) get the ASCII profile so rendered text is byte-identical
//	to the unstyled text.
//
// Inputs:
//
//	w - Destination writer (typically os.Stderr)
//	mode - Colour mode
//
// Outputs:
//
//	DiagnosticStyles - Styles ready for Render
func NewDiagnosticStyles(w io.Writer, mode ColorMode) DiagnosticStyles {
	renderer := lipgloss.NewRenderer(w)

	switch mode {
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI)
	default:
		if !IsTerminal(w) {
			renderer.SetColorProfile(termenv.Ascii)
		}
	}

	// Tabs in linter messages are content, not layout.
	base := renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return DiagnosticStyles{
		Location: base.Foreground(ColorLocation),
		Message:  base.Foreground(ColorMessage),
		Rule:     base.Foreground(ColorRule),
	}
}

// PlainStyles returns styles that never emit escapes.
func PlainStyles() DiagnosticStyles {
	return NewDiagnosticStyles(io.Discard, ColorNever)
}
