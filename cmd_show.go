// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datawire/releasegate/pkg/cliutil"
	"github.com/datawire/releasegate/pkg/git"
	"github.com/datawire/releasegate/pkg/releasegate"
)

func init() {
	var argDate bool
	declaredCmd := &cobra.Command{
		Use:   "declared_version [flags]",
		Short: "Print the version declared in the changelog",
		Long: "Print the version declared in the changelog, without a tag prefix.  CI jobs " +
			"use this to name build artifacts.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(flags *cobra.Command, _ []string) error {
			cfg, dir, err := buildConfig(flags.Context(), flags.Flags(), os.LookupEnv)
			if err != nil {
				return err
			}
			entry, err := releasegate.New(cfg, dir, nil, nil).DeclaredVersion(flags.Context())
			if err != nil {
				return err
			}
			if argDate {
				_, err = fmt.Fprintln(flags.OutOrStdout(), entry.Version, entry.Date)
			} else {
				_, err = fmt.Fprintln(flags.OutOrStdout(), entry.Version)
			}
			return err
		},
	}
	declaredCmd.Flags().BoolVar(&argDate, "date", false, "Also print the release date")
	argparser.AddCommand(declaredCmd)

	argparser.AddCommand(&cobra.Command{
		Use:   "current_version [flags]",
		Short: "Print the newest release tag",
		Long: "Print the newest tag that is the tag prefix followed by a 2- or 3-component " +
			"version, compared numerically.  Prints nothing if there is none.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(flags *cobra.Command, _ []string) error {
			cfg, dir, err := buildConfig(flags.Context(), flags.Flags(), os.LookupEnv)
			if err != nil {
				return err
			}
			tag, err := releasegate.New(cfg, dir, git.Repo{Dir: dir}, nil).CurrentVersion(flags.Context())
			if err != nil {
				return err
			}
			if tag != "" {
				_, err = fmt.Fprintln(flags.OutOrStdout(), tag)
			}
			return err
		},
	})
}
