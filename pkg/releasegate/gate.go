// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package releasegate guarantees that every release has a changelog-declared version strictly
// greater than all previously tagged versions, and that no version is tagged twice.
//
// Verification (Gate.Verify) is read-only and is meant to run on every change to the changelog,
// before merge.  Tagging (Gate.CreateTag) creates a release through the hosting platform's API and
// is meant to run after merge to the release branch; it is idempotent.
package releasegate

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dlog"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/datawire/releasegate/pkg/changelog"
	"github.com/datawire/releasegate/pkg/github"
)

// Repository is the local version-control checkout.
type Repository interface {
	ListTags(ctx context.Context) ([]string, error)
	CurrentBranch(ctx context.Context) (string, error)
}

// ReleaseCreator publishes a release on the hosting platform.
type ReleaseCreator interface {
	CreateRelease(ctx context.Context, repo string, req github.ReleaseRequest) (*github.Release, error)
}

type Gate struct {
	cfg      Config
	dir      string
	repo     Repository
	releases ReleaseCreator
}

// New returns a Gate.  A relative cfg.ChangelogPath is resolved against dir.  releases may be nil
// if CreateTag will not be called.
func New(cfg Config, dir string, repo Repository, releases ReleaseCreator) *Gate {
	return &Gate{
		cfg:      cfg,
		dir:      dir,
		repo:     repo,
		releases: releases,
	}
}

func (g *Gate) changelogFile() string {
	if filepath.IsAbs(g.cfg.ChangelogPath) || g.dir == "" {
		return g.cfg.ChangelogPath
	}
	return filepath.Join(g.dir, g.cfg.ChangelogPath)
}

// DeclaredVersion returns the newest version declared in the changelog.
func (g *Gate) DeclaredVersion(ctx context.Context) (*changelog.Entry, error) {
	filename := g.changelogFile()
	entry, err := changelog.ParseFile(filename)
	if err != nil {
		return nil, err
	}
	dlog.Debugf(ctx, "%s:%d: declares version %s (%s)", filename, entry.Line, entry.Version, entry.Date)
	return entry, nil
}

// CurrentVersion returns the newest release tag, or "" if there are none.
func (g *Gate) CurrentVersion(ctx context.Context) (string, error) {
	tags, err := g.repo.ListTags(ctx)
	if err != nil {
		return "", err
	}
	tag, _ := CurrentVersion(tags, g.cfg.TagPrefix)
	return tag, nil
}

// Verify checks the changelog against the existing tags; see the package-level Verify.
func (g *Gate) Verify(ctx context.Context) (*Report, error) {
	entry, err := g.DeclaredVersion(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := g.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	dlog.Debugf(ctx, "found %d tags", len(tags))
	return Verify(entry, tags, g.cfg.TagPrefix)
}

// TagResult describes what CreateTag did.
type TagResult struct {
	Tag     string
	Created bool // false if the tag already existed, or on a dry run
	DryRun  bool
	Release *github.Release // nil unless Created
}

// ReleaseRequest returns the release that CreateTag would create for entry.
func (g *Gate) ReleaseRequest(entry *changelog.Entry) github.ReleaseRequest {
	tag := g.cfg.TagPrefix + entry.Version

	linkPath := filepath.ToSlash(g.cfg.ChangelogPath)
	if filepath.IsAbs(g.cfg.ChangelogPath) {
		linkPath = filepath.Base(g.cfg.ChangelogPath)
	}
	link := strings.TrimRight(g.cfg.ServerURL, "/") + "/" +
		path.Join(g.cfg.Repository, "blob", tag, path.Clean(linkPath))

	return github.ReleaseRequest{
		TagName: tag,
		Name:    tag,
		Body:    fmt.Sprintf("See the [changelog](%s) for the changes in this release.", link),
	}
}

// CreateTag creates a release (and with it, a tag) for the version declared in the changelog.
//
// If the tag already exists this is a no-op, so it is safe to re-run.  Otherwise the same checks
// as Verify are applied first, and the release is only created if they pass.  At most one network
// request is made, and it is not retried.
func (g *Gate) CreateTag(ctx context.Context) (*TagResult, error) {
	if g.cfg.ReleaseBranch != "" {
		branch, err := g.repo.CurrentBranch(ctx)
		if err != nil {
			return nil, err
		}
		if branch != g.cfg.ReleaseBranch {
			return nil, &WrongBranchError{Current: branch, Release: g.cfg.ReleaseBranch}
		}
	}

	entry, err := g.DeclaredVersion(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := g.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	tag := g.cfg.TagPrefix + entry.Version
	if sets.NewString(tags...).Has(tag) {
		dlog.Infof(ctx, "tag %s already exists; nothing to do", tag)
		return &TagResult{Tag: tag}, nil
	}

	report, err := Verify(entry, tags, g.cfg.TagPrefix)
	if err != nil {
		return nil, err
	}
	req := g.ReleaseRequest(entry)

	if g.cfg.DryRun {
		dlog.Infof(ctx, "dry run: would create release %q in %s (current version: %s)",
			req.TagName, g.cfg.Repository, DisplayTag(report.Current))
		return &TagResult{Tag: tag, DryRun: true}, nil
	}

	if g.releases == nil {
		return nil, errors.New("releasegate: no release API client configured")
	}
	dlog.Infof(ctx, "creating release %q in %s", req.TagName, g.cfg.Repository)
	rel, err := g.releases.CreateRelease(ctx, g.cfg.Repository, req)
	if err != nil {
		return nil, fmt.Errorf("create release %s: %w", tag, err)
	}
	return &TagResult{
		Tag:     tag,
		Created: true,
		Release: rel,
	}, nil
}

// DisplayTag renders a possibly-empty tag name for humans.
func DisplayTag(tag string) string {
	if tag == "" {
		return "(none)"
	}
	return tag
}
