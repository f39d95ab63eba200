// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/datawire/releasegate/pkg/cliutil"
	"github.com/datawire/releasegate/pkg/git"
	"github.com/datawire/releasegate/pkg/github"
	"github.com/datawire/releasegate/pkg/releasegate"
)

func init() {
	cmd := &cobra.Command{
		Use:     "create_new_tag [flags]",
		Aliases: []string{"tag"},
		Short:   "Create the release and tag for the version declared in the changelog",
		Long: "Create a release, and with it the tag PREFIX+VERSION, for the version declared " +
			"in the changelog.  If that tag already exists, do nothing, so that this is safe " +
			"to re-run.  Otherwise the same checks as `verify_changelog_version` must pass " +
			"first." +
			"\n\n" +
			"The release is created through the GitHub REST API, using the bearer token in " +
			"$GITHUB_TOKEN, in the repository named by $GITHUB_REPOSITORY or --repository.  " +
			"Exactly one request is made; it is not retried.  Creating the release is what " +
			"triggers the publishing pipeline.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(flags *cobra.Command, _ []string) error {
			ctx := flags.Context()
			cfg, dir, err := buildConfig(flags.Context(), flags.Flags(), os.LookupEnv)
			if err != nil {
				return err
			}
			if err := cfg.Validate(!cfg.DryRun); err != nil {
				return err
			}

			client := github.Client{
				BaseURL: cfg.APIURL,
				Token:   cfg.APIToken,
			}
			gate := releasegate.New(cfg, dir, git.Repo{Dir: dir}, client)
			result, err := gate.CreateTag(ctx)
			if err != nil {
				return err
			}

			out := cliutil.NewHighlighter(flags.OutOrStdout(), colorMode(flags))
			switch {
			case result.Created:
				out.Successf("Created release %s: %s", result.Tag, result.Release.HTMLURL)
			case result.DryRun:
				out.Successf("Would create release %s", result.Tag)
			default:
				out.Successf("Tag %s already exists; nothing to do", result.Tag)
			}
			return nil
		},
	}
	addTagFlags(cmd.Flags())
	argparser.AddCommand(cmd)
}
