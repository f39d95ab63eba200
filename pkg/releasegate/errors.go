// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package releasegate

import (
	"errors"
	"fmt"

	"github.com/datawire/releasegate/pkg/changelog"
)

// Process exit codes.  The calling pipeline treats any non-zero code as a hard stop.
const (
	ExitOK                 = 0
	ExitFailure            = 1
	ExitMalformedChangelog = 171
	ExitVersionConflict    = 172
	ExitWrongBranch        = 173
)

// VersionNotIncrementedError is returned when the declared version is not strictly greater
// than the newest release tag.
type VersionNotIncrementedError struct {
	Current  string // tag name
	Declared string // tag name
}

func (e *VersionNotIncrementedError) Error() string {
	return fmt.Sprintf("new version %s must be greater than the current version %s; "+
		"bump the version in the changelog", e.Declared, e.Current)
}

// DuplicateVersionError is returned when a tag with the bare declared version already exists.
type DuplicateVersionError struct {
	Tag string
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("version %s already exists as a tag", e.Tag)
}

// WrongBranchError is returned when CreateTag is run from a branch other than the release
// branch.
type WrongBranchError struct {
	Current string
	Release string
}

func (e *WrongBranchError) Error() string {
	return fmt.Sprintf("refusing to create a tag from branch %q; releases are only tagged from %q",
		e.Current, e.Release)
}

// ExitCode maps an error returned by this package to the process exit code that reports it.
func ExitCode(err error) int {
	var (
		malformed      *changelog.MalformedError
		notIncremented *VersionNotIncrementedError
		duplicate      *DuplicateVersionError
		wrongBranch    *WrongBranchError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &malformed):
		return ExitMalformedChangelog
	case errors.As(err, &notIncremented), errors.As(err, &duplicate):
		return ExitVersionConflict
	case errors.As(err, &wrongBranch):
		return ExitWrongBranch
	default:
		return ExitFailure
	}
}
