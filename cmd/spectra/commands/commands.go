// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete Spectra CLI command tree. The
// spectra binary is the only consumer; keeping the tree in its own
// package keeps main.go down to process concerns (signals, exit
// codes, the global --verbose flag).
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spectra-foundation/spectra/cmd/spectra/cli"
	"github.com/spectra-foundation/spectra/lib/version"
)

// Root builds and returns the complete Spectra CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "spectra",
		Description: `Spectra: colour science dataset acquisition.

Sync spectral measurement datasets from Zenodo into a local
repository and load them as structured collections.`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			syncCommand(),
			loadCommand(),
			historyCommand(),
			browseCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("spectra %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "List every dataset in the registry",
				Command:     "spectra list",
			},
			{
				Description: "Sync one dataset into the local repository",
				Command:     "spectra sync 3245895",
			},
			{
				Description: "Sync by exact title",
				Command:     "spectra sync 'Camera Spectral Sensitivity Database'",
			},
			{
				Description: "Load a dataset and print its structure",
				Command:     "spectra load 3245895",
			},
			{
				Description: "Browse datasets interactively",
				Command:     "spectra browse",
			},
			{
				Description: "Review recent pull activity",
				Command:     "spectra history",
			},
		},
	}
}
