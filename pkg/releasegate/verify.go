// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package releasegate

import (
	"regexp"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/datawire/releasegate/pkg/changelog"
	"github.com/datawire/releasegate/pkg/dotted"
)

// Report is the outcome of a successful verification.
type Report struct {
	Current string // newest existing release tag; empty if there are none
	New     string // release tag for the declared version
	Date    string // release date, as written in the changelog
}

func releaseTagPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `([0-9]+(?:\.[0-9]+){1,2})$`)
}

// CurrentVersion returns the newest of the tags that name a release (the prefix followed by a
// 2- or 3-component dotted version), compared by dotted-numeric ordering.  If no tag names a
// release, it returns ("", nil).
func CurrentVersion(tags []string, prefix string) (string, dotted.Version) {
	re := releaseTagPattern(prefix)
	var (
		names []string
		vers  []dotted.Version
	)
	for _, tag := range tags {
		match := re.FindStringSubmatch(tag)
		if match == nil {
			continue
		}
		ver, err := dotted.Parse(match[1])
		if err != nil {
			continue
		}
		names = append(names, tag)
		vers = append(vers, ver)
	}
	ver, idx := dotted.Max(vers...)
	if idx < 0 {
		return "", nil
	}
	return names[idx], ver
}

// Verify checks that the version declared in the changelog may be released, given the existing
// tags.  It has no side effects.
//
// The declared version must be strictly greater than the newest release tag
// (VersionNotIncrementedError), and there must not be a tag that is exactly the bare declared
// version (DuplicateVersionError).
func Verify(entry *changelog.Entry, tags []string, prefix string) (*Report, error) {
	declaredTag := prefix + entry.Version
	currentTag, current := CurrentVersion(tags, prefix)
	if current != nil && current.Cmp(entry.Parsed) >= 0 {
		return nil, &VersionNotIncrementedError{
			Current:  currentTag,
			Declared: declaredTag,
		}
	}
	if sets.NewString(tags...).Has(entry.Version) {
		return nil, &DuplicateVersionError{Tag: entry.Version}
	}
	return &Report{
		Current: currentTag,
		New:     declaredTag,
		Date:    entry.Date,
	}, nil
}
