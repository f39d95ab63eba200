// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode says whether diagnostics should be colored.  It implements pflag.Value, so that it
// can be used directly as a flag.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func (m *ColorMode) String() string { return string(*m) }

func (m *ColorMode) Type() string { return "auto|always|never" }

func (m *ColorMode) Set(str string) error {
	switch ColorMode(str) {
	case ColorAuto, ColorAlways, ColorNever:
		*m = ColorMode(str)
		return nil
	default:
		return fmt.Errorf("invalid color mode %q: must be one of %q, %q, or %q",
			str, ColorAuto, ColorAlways, ColorNever)
	}
}

// Highlighter styles diagnostic lines written to a particular output.
type Highlighter struct {
	out      io.Writer
	errStyle lipgloss.Style
	okStyle  lipgloss.Style
}

// NewHighlighter returns a Highlighter for out.  In ColorAuto mode, color is used only if out is
// a terminal.
func NewHighlighter(out io.Writer, mode ColorMode) *Highlighter {
	renderer := lipgloss.NewRenderer(out)
	switch mode {
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI)
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	default:
		if !IsTerminal(out) {
			renderer.SetColorProfile(termenv.Ascii)
		}
	}
	return &Highlighter{
		out:      out,
		errStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		okStyle:  renderer.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// each line is rendered on its own; lipgloss would otherwise pad a block to its widest line.
func (h *Highlighter) println(style lipgloss.Style, msg string) {
	lines := strings.Split(strings.TrimRight(msg, "\n"), "\n")
	for i := range lines {
		lines[i] = style.Render(lines[i])
	}
	fmt.Fprintln(h.out, strings.Join(lines, "\n"))
}

// Errorf prints an error diagnostic, in bold red if color is enabled.
func (h *Highlighter) Errorf(format string, args ...interface{}) {
	h.println(h.errStyle, fmt.Sprintf(format, args...))
}

// Successf prints a success message, in green if color is enabled.
func (h *Highlighter) Successf(format string, args ...interface{}) {
	h.println(h.okStyle, fmt.Sprintf(format, args...))
}
