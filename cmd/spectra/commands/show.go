// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/spectra-foundation/spectra/cmd/spectra/cli"
	"github.com/spectra-foundation/spectra/lib/dataset"
)

// showCommand returns the "show" subcommand.
func showCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Show dataset details",
		Description: `Show registry and repository details for one dataset: its
record ID, title, citation, and, when synced, the archive manifest
and extracted location.

The dataset may be named by record ID or by exact title.`,
		Usage: "spectra show <dataset>",
		Examples: []cli.Example{
			{
				Description: "Show a dataset by record ID",
				Command:     "spectra show 3245895",
			},
			{
				Description: "Show a dataset by exact title",
				Command:     "spectra show 'Camera Spectral Sensitivity Database'",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one dataset identifier, got %d", len(args))
			}

			rt, err := newRuntime(logger)
			if err != nil {
				return err
			}

			descriptor, err := rt.Registry.Get(args[0])
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(writer, "ID:\t%s\n", descriptor.ID)
			fmt.Fprintf(writer, "Title:\t%s\n", descriptor.Title)
			if descriptor.Citation != "" {
				fmt.Fprintf(writer, "Citation:\t%s\n", descriptor.Citation)
			}

			if !rt.Cache.Has(descriptor.ID) {
				fmt.Fprintf(writer, "Synced:\tno\n")
				return writer.Flush()
			}

			entry, err := rt.Cache.Entry(descriptor.ID)
			if err != nil {
				if dataset.IsIntegrity(err) {
					fmt.Fprintf(writer, "Synced:\tcorrupt (%v)\n", err)
					return writer.Flush()
				}
				return err
			}

			location, err := rt.Cache.Locate(descriptor.ID)
			if err != nil {
				return err
			}

			var archiveBytes, extractedBytes int64
			for _, file := range entry.Files {
				archiveBytes += file.Size
			}
			for _, file := range entry.Extracted {
				extractedBytes += file.Size
			}

			fmt.Fprintf(writer, "Synced:\t%s\n", entry.SyncedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(writer, "Location:\t%s\n", location)
			fmt.Fprintf(writer, "Archives:\t%d files, %s\n", len(entry.Files), humanize.Bytes(uint64(archiveBytes)))
			fmt.Fprintf(writer, "Extracted:\t%d files, %s\n", len(entry.Extracted), humanize.Bytes(uint64(extractedBytes)))
			return writer.Flush()
		},
	}
}
