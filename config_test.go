// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/releasegate/pkg/releasegate"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("releasegate", pflag.ContinueOnError)
	addGlobalFlags(flags)
	addTagFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func noEnv(string) (string, bool) { return "", false }

func TestBuildConfigDefaults(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	dir := t.TempDir()

	cfg, cfgDir, err := buildConfig(ctx, newFlagSet(t, "-C", dir), noEnv)
	require.NoError(t, err)
	assert.Equal(t, dir, cfgDir)
	assert.Equal(t, releasegate.DefaultConfig(), cfg)
}

func TestBuildConfigPrecedence(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, releasegate.DefaultConfigFile), []byte(""+
		"changelog: docs/CHANGELOG.rst\n"+
		"tagPrefix: release-\n"+
		"repository: file/repo\n"+
		"releaseBranch: file-branch\n"), 0o644))
	env := map[string]string{
		"GITHUB_REPOSITORY":          "env/repo",
		"GITHUB_TOKEN":               "s3cr3t",
		"RELEASEGATE_RELEASE_BRANCH": "env-branch",
	}
	lookupEnv := func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}

	cfg, _, err := buildConfig(ctx, newFlagSet(t,
		"--directory="+dir,
		"--release-branch=flag-branch",
		"--dry-run",
	), lookupEnv)
	require.NoError(t, err)
	assert.Equal(t, "docs/CHANGELOG.rst", cfg.ChangelogPath) // file
	assert.Equal(t, "release-", cfg.TagPrefix)               // file
	assert.Equal(t, "env/repo", cfg.Repository)              // env beats file
	assert.Equal(t, "s3cr3t", cfg.APIToken)                  // env
	assert.Equal(t, "flag-branch", cfg.ReleaseBranch)        // flag beats env
	assert.True(t, cfg.DryRun)
}

func TestBuildConfigExplicitFile(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gate.yaml"), []byte("tagPrefix: ''\n"), 0o644))

	cfg, _, err := buildConfig(ctx, newFlagSet(t, "-C", dir, "--config=gate.yaml", "--changelog=NEWS"), noEnv)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.TagPrefix)
	assert.Equal(t, "NEWS", cfg.ChangelogPath)

	// An explicitly requested file must exist.
	_, _, err = buildConfig(ctx, newFlagSet(t, "-C", dir, "--config=missing.yaml"), noEnv)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// A broken default file is an error, not silently ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, releasegate.DefaultConfigFile), []byte("bogus: true\n"), 0o644))
	_, _, err = buildConfig(ctx, newFlagSet(t, "-C", dir), noEnv)
	assert.Error(t, err)
}

func TestBuildConfigWorktree(t *testing.T) {
	t.Parallel()
	if _, err := dexec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	ctx := dlog.NewTestContext(t, false)
	top, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, dexec.CommandContext(ctx, "git", "init", "--quiet", top).Run())
	require.NoError(t, os.WriteFile(filepath.Join(top, releasegate.DefaultConfigFile), []byte("tagPrefix: release-\n"), 0o644))
	sub := filepath.Join(top, "docs", "source")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	// Run from a subdirectory, the config file at the top of the working tree is found.
	cfg, cfgDir, err := buildConfig(ctx, newFlagSet(t, "-C", sub), noEnv)
	require.NoError(t, err)
	assert.Equal(t, top, cfgDir)
	assert.Equal(t, "release-", cfg.TagPrefix)
}

func TestSubcommands(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"verify_changelog_version", "verify", "create_new_tag", "tag",
		"declared_version", "current_version"} {
		cmd, _, err := argparser.Find([]string{name})
		assert.NoError(t, err, name)
		assert.NotEqual(t, argparser, cmd, name)
	}
}
