// Copyright (C) 2021-2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Command releasegate checks that the version declared in a changelog may be released, and tags
// the release.
package main

import (
	"context"
	"os"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/datawire/releasegate/pkg/cliutil"
	"github.com/datawire/releasegate/pkg/releasegate"
)

const exitStatus = "" +
	"  0     success\n" +
	"  1     failure (reading files, running git, or calling the release API)\n" +
	"  2     invalid usage\n" +
	"  171   malformed changelog: no version declaration in its first 7 lines\n" +
	"  172   the declared version is not greater than the current version, or is already tagged\n" +
	"  173   not on the release branch\n"

var argparser = &cobra.Command{
	Use:   "releasegate {[flags]|SUBCOMMAND...}",
	Short: "Check and tag the release declared in a changelog",
	Long: "releasegate guards releases.  The version being released is declared in the " +
		"changelog, by a line like \"Version 1.3.0 (2026-10-18)\" in its first 7 lines.  " +
		"`verify_changelog_version` checks that it is greater than every released version " +
		"and has not been tagged before; run it on every change to the changelog.  " +
		"`create_new_tag` creates the release and its tag; run it after merge to the " +
		"release branch.",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,

	Annotations: map[string]string{
		cliutil.ExitStatusAnnotation: exitStatus,
	},

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

var (
	logger = logrus.New()
	// activeCmd is the subcommand being run, for error messages.
	activeCmd = argparser
)

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	addGlobalFlags(argparser.PersistentFlags())

	argparser.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		activeCmd = cmd
		levelStr, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		level, err := logrus.ParseLevel(levelStr)
		if err != nil {
			return cliutil.FlagErrorFunc(cmd, err)
		}
		logger.SetLevel(level)
		return nil
	}
}

func main() {
	ctx := context.Background()

	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	ctx = dlog.WithLogger(ctx, dlog.WrapLogrus(logger))

	if err := argparser.ExecuteContext(ctx); err != nil {
		mode := cliutil.ColorAuto
		if flag := activeCmd.Flags().Lookup("color"); flag != nil {
			mode = cliutil.ColorMode(flag.Value.String())
		}
		cliutil.NewHighlighter(argparser.ErrOrStderr(), mode).Errorf("%s: error: %s",
			activeCmd.CommandPath(), strings.TrimRight(err.Error(), "\n"))
		os.Exit(releasegate.ExitCode(err))
	}
}
