package cliutil

import (
	"strings"
)

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// Wrap the string `s` to a maximum width `w` with leading indent `i`.  The first line is not
// indented (this is assumed to be done by caller).  Pass `w` == 0 to do no wrapping
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

const (
	wrapSlop     = 5
	wrapMinWidth = 24
	// wrapFallbackIndent is the indent used when there is not enough room to the right of the
	// requested indent, and the text is instead started as a block on the next line.
	wrapFallbackIndent = 16
)

// splitLine splits `s` at the last whitespace before `n` bytes.  It will go up to `slop` over `n`
// if that takes the whole rest of the string.  An embedded newline always ends the line.
func splitLine(n, slop int, s string) (line, rest string) {
	if n+slop > len(s) {
		return s, ""
	}
	sp := strings.LastIndexAny(s[:n], " \t\n")
	if sp <= 0 {
		return s, ""
	}
	if nl := strings.LastIndex(s[:n], "\n"); nl > 0 && nl < sp {
		return s[:nl], s[nl+1:]
	}
	return s[:sp], s[sp+1:]
}

func wrap(i, w int, s string) string {
	if w == 0 {
		return strings.ReplaceAll(s, "\n", "\n"+strings.Repeat(" ", i))
	}

	var ret strings.Builder
	width := w - i
	if width < wrapMinWidth {
		i = wrapFallbackIndent
		width = w - i
		ret.WriteString("\n" + strings.Repeat(" ", i))
	}
	if width < wrapMinWidth {
		return ret.String() + s
	}
	width -= wrapSlop

	indent := strings.Repeat(" ", i)
	first := true
	for first || s != "" {
		var line string
		line, s = splitLine(width, wrapSlop, s)
		if !first {
			ret.WriteString("\n" + indent)
		}
		ret.WriteString(strings.ReplaceAll(line, "\n", "\n"+indent))
		first = false
	}
	return ret.String()
}
