// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/releasegate/pkg/cliutil"
)

func TestHighlighter(t *testing.T) {
	t.Parallel()

	var plain strings.Builder
	cliutil.NewHighlighter(&plain, cliutil.ColorNever).Errorf("releasegate verify: error: %v",
		errors.New("version 1.2.3 already exists as a tag"))
	assert.Equal(t, "releasegate verify: error: version 1.2.3 already exists as a tag\n", plain.String())

	// A strings.Builder is not a terminal.
	var auto strings.Builder
	cliutil.NewHighlighter(&auto, cliutil.ColorAuto).Successf("New version: %s", "v1.3.0")
	assert.Equal(t, "New version: v1.3.0\n", auto.String())

	var colored strings.Builder
	cliutil.NewHighlighter(&colored, cliutil.ColorAlways).Errorf("line one\nline two\n")
	lines := strings.Split(strings.TrimSuffix(colored.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "\x1b[")
	}
	assert.Contains(t, lines[0], "line one")
	assert.Contains(t, lines[1], "line two")
}

func TestColorMode(t *testing.T) {
	t.Parallel()
	mode := cliutil.ColorAuto
	assert.Equal(t, "auto", mode.String())
	assert.NoError(t, mode.Set("always"))
	assert.Equal(t, cliutil.ColorAlways, mode)
	assert.Error(t, mode.Set("sometimes"))
	assert.Equal(t, cliutil.ColorAlways, mode)
}
