// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package dotted implements dotted-numeric version identifiers, such as "1.2" or "1.10.0", and
// their ordering.
//
// Components are compared as integers, never as text, so 1.10.0 sorts after 1.9.0.  When one
// version is a prefix of the other, the shorter one sorts first; a missing component is absent,
// not zero.  This mirrors the ordering of GNU `sort --version-sort` for the tags that releases
// actually use.
package dotted

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxComponents is the largest number of components a Version may have.
const MaxComponents = 3

var reVersion = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+){0,2}$`)

// Version is a parsed dotted-numeric version of 1 to MaxComponents components.
type Version []int

// ParseError is returned by Parse for strings that are not dotted-numeric versions.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dotted.Parse: invalid version %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("dotted.Parse: invalid version %q", e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses a string of the form "N", "N.N", or "N.N.N".
func Parse(str string) (Version, error) {
	if !reVersion.MatchString(str) {
		return nil, &ParseError{Input: str}
	}
	parts := strings.Split(str, ".")
	ret := make(Version, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, &ParseError{Input: str, Err: err}
		}
		ret = append(ret, n)
	}
	return ret, nil
}

// MustParse is like Parse, but panics on error.  It is intended for tests and constants.
func MustParse(str string) Version {
	ver, err := Parse(str)
	if err != nil {
		panic(err)
	}
	return ver
}

// String implements fmt.Stringer.
func (ver Version) String() string {
	strs := make([]string, 0, len(ver))
	for _, n := range ver {
		strs = append(strs, strconv.Itoa(n))
	}
	return strings.Join(strs, ".")
}

// Cmp returns -1, 0, or 1 depending on whether a sorts before, the same as, or after b.
func (a Version) Cmp(b Version) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Max returns the greatest of the given versions and its index.  If no versions are given, Max
// returns (nil, -1).  Ties go to the first occurrence.
func Max(vers ...Version) (Version, int) {
	idx := -1
	var ret Version
	for i, ver := range vers {
		if idx < 0 || ver.Cmp(ret) > 0 {
			idx = i
			ret = ver
		}
	}
	return ret, idx
}
