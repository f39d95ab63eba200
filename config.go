// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/pflag"

	"github.com/datawire/releasegate/pkg/cliutil"
	"github.com/datawire/releasegate/pkg/git"
	"github.com/datawire/releasegate/pkg/releasegate"
)

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringP("directory", "C", "",
		"Run as if started in `DIR`; relative paths are resolved against the top of its Git working tree")
	flags.String("config", "",
		"Read settings from `FILE` (default: "+releasegate.DefaultConfigFile+", if it exists)")
	flags.String("changelog", "",
		"Read the declared version from `FILE` (default: CHANGELOG.rst)")
	flags.String("tag-prefix", "",
		"Release tags are `PREFIX` followed by the version (default: v)")
	flags.String("log-level", "info",
		"Log at `LEVEL` (one of error, warning, info, debug)")
	color := cliutil.ColorAuto
	flags.Var(&color, "color", "Color diagnostics: auto, always, or never")
}

func addTagFlags(flags *pflag.FlagSet) {
	flags.String("repository", "",
		"Create the release in `OWNER/NAME` (default: $GITHUB_REPOSITORY)")
	flags.String("release-branch", "",
		"Refuse to tag unless on `BRANCH` (default: $RELEASEGATE_RELEASE_BRANCH)")
	flags.Bool("dry-run", false,
		"Check everything and log the release that would be created, but don't create it")
}

// worktreeDir returns the top of the Git working tree containing dir, so that the changelog and
// config file are found the same way from any subdirectory.  Outside of a working tree, it
// returns dir unchanged.
func worktreeDir(ctx context.Context, dir string) string {
	top, err := git.Repo{Dir: dir}.TopLevel(ctx)
	if err != nil {
		dlog.Debugf(ctx, "not in a git working tree, using %q as-is: %v", dir, err)
		return dir
	}
	return top
}

// buildConfig assembles the configuration from, in increasing order of precedence: the
// defaults, the config file, the environment, and command-line flags.  It returns the
// configuration and the directory that relative paths are resolved against.
func buildConfig(ctx context.Context, flags *pflag.FlagSet, lookupEnv func(string) (string, bool)) (releasegate.Config, string, error) {
	cfg := releasegate.DefaultConfig()
	dir, _ := flags.GetString("directory")
	dir = worktreeDir(ctx, dir)

	configFile, _ := flags.GetString("config")
	if configFile != "" {
		if !filepath.IsAbs(configFile) && dir != "" {
			configFile = filepath.Join(dir, configFile)
		}
		if err := releasegate.LoadConfigFile(configFile, &cfg); err != nil {
			return cfg, dir, err
		}
	} else {
		err := releasegate.LoadConfigFile(filepath.Join(dir, releasegate.DefaultConfigFile), &cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, dir, err
		}
	}

	cfg.ApplyEnv(lookupEnv)

	for name, dst := range map[string]*string{
		"changelog":      &cfg.ChangelogPath,
		"tag-prefix":     &cfg.TagPrefix,
		"repository":     &cfg.Repository,
		"release-branch": &cfg.ReleaseBranch,
	} {
		if flag := flags.Lookup(name); flag != nil && flag.Changed {
			*dst = flag.Value.String()
		}
	}
	if flag := flags.Lookup("dry-run"); flag != nil && flag.Changed {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}

	return cfg, dir, nil
}
