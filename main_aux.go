//go:build aux

// Copyright (C) 2021-2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/datawire/releasegate/pkg/cliutil"
)

// docGenerator writes documentation for the whole command tree in to a directory.
type docGenerator func(root *cobra.Command, dir string) error

func addDocCommand(use, short string, gen docGenerator) {
	argparser.AddCommand(&cobra.Command{
		Hidden: true,
		Use:    use + " OUT_DIRECTORY",
		Short:  short,
		Args:   cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.RemoveAll(dir); err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0777); err != nil {
				return err
			}
			root := cmd.Root()
			root.DisableAutoGenTag = true
			return gen(root, dir)
		},
	})
}

func init() {
	// completion; available for packaging, but not advertised
	argparser.CompletionOptions.DisableDefaultCmd = false
	cobra.OnInitialize(func() {
		if completionCmd, _, err := argparser.Find([]string{"completion"}); err == nil && completionCmd != argparser {
			completionCmd.Hidden = true
		}
	})

	addDocCommand("man", "Generate man pages", func(root *cobra.Command, dir string) error {
		return doc.GenManTree(root, &doc.GenManHeader{
			Source: "Ambassador Labs",
			Manual: root.Name(),
		}, dir)
	})
	addDocCommand("mddoc", "Generate markdown documentation", doc.GenMarkdownTree)
}
