// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package changelog_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/releasegate/pkg/changelog"
	"github.com/datawire/releasegate/pkg/testutil"
)

const rstChangelog = `=========
Changelog
=========

Version 0.4.0 (2026-10-18)
==========================

* Support for tag prefixes.

Version 0.3.1 (2026-05-20)
==========================

* Fixed rendering of the version switcher.
`

func TestParse(t *testing.T) {
	t.Parallel()
	type TestCase struct {
		Input   string
		Version string // empty for MalformedError
		Date    string
		Line    int
	}
	testcases := map[string]TestCase{
		"rst": {
			Input:   rstChangelog,
			Version: "0.4.0",
			Date:    "(2026-10-18)",
			Line:    5,
		},
		"first-line": {
			Input:   "Version 1.2.3 2026-01-01\n",
			Version: "1.2.3",
			Date:    "2026-01-01",
			Line:    1,
		},
		"seventh-line": {
			Input:   strings.Repeat("\n", 6) + "Version 1.2.3 2026-01-01\n",
			Version: "1.2.3",
			Date:    "2026-01-01",
			Line:    7,
		},
		"eighth-line": {
			Input: strings.Repeat("\n", 7) + "Version 1.2.3 2026-01-01\n",
		},
		"first-match-wins": {
			Input:   "Version 2.0.0 today\nVersion 1.0.0 yesterday\n",
			Version: "2.0.0",
			Date:    "today",
			Line:    1,
		},
		"no-trailing-newline": {
			Input:   "Version 1.2.3 2026-01-01",
			Version: "1.2.3",
			Date:    "2026-01-01",
			Line:    1,
		},
		"leading-whitespace": {
			Input:   "   Release  10.20.30\t2026-01-01 extra words\n",
			Version: "10.20.30",
			Date:    "2026-01-01",
			Line:    1,
		},
		"missing-date": {
			Input: "Version 1.2.3\n",
		},
		"two-components": {
			Input: "Version 1.2 2026-01-01\n",
		},
		"four-components": {
			Input: "Version 1.2.3.4 2026-01-01\n",
		},
		"suffixed-version": {
			Input: "Version 1.2.3rc1 2026-01-01\n",
		},
		"prefixed-version": {
			Input: "Version v1.2.3 2026-01-01\n",
		},
		"version-first": {
			Input: "1.2.3 2026-01-01\n",
		},
		"empty": {
			Input: "",
		},
		"overflowing-first-match": {
			Input: "Version 99999999999999999999.0.0 today\nVersion 1.0.0 yesterday\n",
		},
		"long-header-line": {
			Input:   strings.Repeat("=", 70000) + "\nVersion 1.2.3 today\n",
			Version: "1.2.3",
			Date:    "today",
			Line:    2,
		},
		"crlf": {
			Input:   "Changelog\r\n\r\nVersion 1.2.3 2026-01-01\r\n",
			Version: "1.2.3",
			Date:    "2026-01-01",
			Line:    3,
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			entry, err := changelog.Parse(strings.NewReader(tcData.Input))
			if tcData.Version == "" {
				var malformed *changelog.MalformedError
				require.ErrorAs(t, err, &malformed)
				assert.Nil(t, entry)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, entry)
			assert.Equal(t, tcData.Version, entry.Version)
			assert.Equal(t, tcData.Version, entry.Parsed.String())
			assert.Equal(t, tcData.Date, entry.Date)
			assert.Equal(t, tcData.Line, entry.Line)
		})
	}
}

// The declared version depends only on the first matching line of the header, regardless of
// what surrounds it.
func TestParseWindow(t *testing.T) {
	t.Parallel()
	testutil.QuickCheck(t, func(pos uint8, before, after []string) bool {
		i := int(pos)%changelog.HeaderLines + 1
		var lines []string
		for len(lines) < i-1 {
			filler := "no declaration here"
			if len(before) > 0 {
				filler = strings.ReplaceAll(before[0], "\n", " ")
				before = before[1:]
			}
			// Make sure the filler can't itself look like a declaration.
			lines = append(lines, "# "+filler)
		}
		lines = append(lines, fmt.Sprintf("Version %d.%d.%d date", i, i*2, i*3))
		lines = append(lines, after...)

		entry, err := changelog.Parse(strings.NewReader(strings.Join(lines, "\n")))
		return err == nil &&
			entry.Line == i &&
			entry.Version == fmt.Sprintf("%d.%d.%d", i, i*2, i*3)
	}, testutil.QuickConfig{MaxCount: 500})
}

func TestParseFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	good := filepath.Join(dir, "CHANGELOG.rst")
	require.NoError(t, os.WriteFile(good, []byte(rstChangelog), 0o644))
	entry, err := changelog.ParseFile(good)
	require.NoError(t, err)
	assert.Equal(t, "0.4.0", entry.Version)

	bad := filepath.Join(dir, "BAD.rst")
	require.NoError(t, os.WriteFile(bad, []byte("Changelog\n=========\n"), 0o644))
	_, err = changelog.ParseFile(bad)
	var malformed *changelog.MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, bad, malformed.Path)
	assert.Equal(t, 2, malformed.Lines)
	assert.Contains(t, err.Error(), bad)

	overflow := filepath.Join(dir, "OVERFLOW.rst")
	require.NoError(t, os.WriteFile(overflow, []byte("Changelog\n\nVersion 1.99999999999999999999.0 today\n"), 0o644))
	_, err = changelog.ParseFile(overflow)
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 3, malformed.Lines)
	assert.Error(t, malformed.Err)
	assert.Contains(t, err.Error(), overflow+":3:")

	_, err = changelog.ParseFile(filepath.Join(dir, "missing.rst"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
