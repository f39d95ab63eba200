// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package changelog extracts the newest declared version from the header of a changelog file.
//
// By convention, one of the first HeaderLines lines of the changelog declares the version being
// released, as a line of the form
//
//	LABEL MAJOR.MINOR.PATCH DATE [...]
//
// for example "Version 1.3.0 (2026-10-18)".  The first such line wins; nothing outside of the
// header is inspected.
package changelog

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/datawire/releasegate/pkg/dotted"
)

// HeaderLines is the number of lines at the top of the changelog that are searched.
const HeaderLines = 7

var reDeclaration = regexp.MustCompile(`^\s*(\S+)\s+([0-9]+\.[0-9]+\.[0-9]+)\s+(\S+)`)

// Entry is a version declaration found in a changelog header.
type Entry struct {
	Label   string
	Version string // exactly as written
	Parsed  dotted.Version
	Date    string
	Line    int // 1-based
}

// MalformedError is returned when none of the header lines declares a version, or when the first
// declaration has a version that can't be represented.
type MalformedError struct {
	Path  string // may be empty if the changelog was not read from a file
	Lines int    // number of lines that were inspected
	Err   error  // set if line Lines is an unusable declaration
}

func (e *MalformedError) Error() string {
	name := e.Path
	if name == "" {
		name = "changelog"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: malformed: %v", name, e.Lines, e.Err)
	}
	return fmt.Sprintf("%s: malformed: none of the first %d lines declares a version "+
		"(expected a line like \"Version X.Y.Z DATE\")", name, e.Lines)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Parse reads at most HeaderLines lines from r, and returns the first version declaration.  Lines
// may be of any length.
func Parse(r io.Reader) (*Entry, error) {
	rd := bufio.NewReader(r)
	lineno := 0
	for lineno < HeaderLines {
		line, err := rd.ReadString('\n')
		if line == "" && err == io.EOF {
			break
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
		lineno++
		match := reDeclaration.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if match != nil {
			ver, parseErr := dotted.Parse(match[2])
			if parseErr != nil {
				// The first declaration wins, even if it is unusable.
				return nil, &MalformedError{Lines: lineno, Err: parseErr}
			}
			return &Entry{
				Label:   match[1],
				Version: match[2],
				Parsed:  ver,
				Date:    match[3],
				Line:    lineno,
			}, nil
		}
		if err == io.EOF {
			break
		}
	}
	return nil, &MalformedError{Lines: lineno}
}

// ParseFile is like Parse, but reads from the named file.
func ParseFile(filename string) (*Entry, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	entry, err := Parse(fh)
	if err != nil {
		if malformed, ok := err.(*MalformedError); ok {
			malformed.Path = filename
			return nil, malformed
		}
		return nil, &fs.PathError{
			Op:   "read changelog",
			Path: filename,
			Err:  err,
		}
	}
	return entry, nil
}
