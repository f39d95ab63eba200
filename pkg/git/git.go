// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package git reads tags and branches from a local Git checkout by running the git CLI.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/datawire/dlib/dexec"
)

// Repo is a Git working tree.  The zero value refers to the working tree containing the current
// directory.
type Repo struct {
	Dir string
}

func (r Repo) output(ctx context.Context, args ...string) (string, error) {
	cmd := dexec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	bs, err := cmd.Output()
	if err != nil {
		var exitErr *dexec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			err = fmt.Errorf("%w:\n > %s", err,
				strings.Join(strings.Split(strings.TrimRight(string(exitErr.Stderr), "\n"), "\n"), "\n > "))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(bs), nil
}

// ListTags returns the names of all tags in the repository, in the order that git lists them.
func (r Repo) ListTags(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "for-each-ref", "--format=%(refname:strip=2)", "refs/tags")
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// CurrentBranch returns the short name of the checked-out branch, or "HEAD" if the HEAD is
// detached.
func (r Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// TopLevel returns the absolute path of the top directory of the working tree.
func (r Repo) TopLevel(ctx context.Context) (string, error) {
	out, err := r.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
