// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/datawire/releasegate/pkg/cliutil"
	"github.com/datawire/releasegate/pkg/git"
	"github.com/datawire/releasegate/pkg/releasegate"
)

func init() {
	cmd := &cobra.Command{
		Use:     "verify_changelog_version [flags]",
		Aliases: []string{"verify"},
		Short:   "Check that the changelog declares a new, greater version",
		Long: "Check that the version declared in the changelog is strictly greater than the " +
			"newest release tag, and that it has not already been tagged without the prefix.  " +
			"This only reads the changelog and the local tags; it changes nothing, and is meant " +
			"to run on every change to the changelog, before merge." +
			"\n\n" +
			"Versions are compared numerically component by component, so 1.10.0 is greater " +
			"than 1.9.0.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(flags *cobra.Command, _ []string) error {
			ctx := flags.Context()
			cfg, dir, err := buildConfig(flags.Context(), flags.Flags(), os.LookupEnv)
			if err != nil {
				return err
			}
			if err := cfg.Validate(false); err != nil {
				return err
			}

			gate := releasegate.New(cfg, dir, git.Repo{Dir: dir}, nil)
			report, err := gate.Verify(ctx)
			if err != nil {
				return err
			}

			out := cliutil.NewHighlighter(flags.OutOrStdout(), colorMode(flags))
			out.Successf("Current version: %s", releasegate.DisplayTag(report.Current))
			out.Successf("New version: %s", report.New)
			return nil
		},
	}
	argparser.AddCommand(cmd)
}

func colorMode(cmd *cobra.Command) cliutil.ColorMode {
	if flag := cmd.Flags().Lookup("color"); flag != nil {
		return cliutil.ColorMode(flag.Value.String())
	}
	return cliutil.ColorAuto
}
