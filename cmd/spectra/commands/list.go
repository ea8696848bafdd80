// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/spectra-foundation/spectra/cmd/spectra/cli"
)

// listCommand returns the "list" subcommand.
func listCommand() *cli.Command {
	var jsonOutput bool

	return &cli.Command{
		Name:    "list",
		Summary: "List datasets in the registry",
		Description: `List every dataset the registry knows, with its Zenodo record
ID and whether a synced copy exists in the local repository.

Listing never touches the network: titles come from the embedded
registry and the synced column from the local repository only.`,
		Usage: "spectra list [flags]",
		Examples: []cli.Example{
			{
				Description: "List all datasets",
				Command:     "spectra list",
			},
			{
				Description: "Output as JSON for scripting",
				Command:     "spectra list --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.BoolVar(&jsonOutput, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			rt, err := newRuntime(logger)
			if err != nil {
				return err
			}

			statuses := rt.Registry.List()

			if jsonOutput {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(statuses)
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tTITLE\tSYNCED")
			for _, status := range statuses {
				synced := "-"
				if status.Synced {
					synced = "yes"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", status.ID, status.Title, synced)
			}
			return writer.Flush()
		},
	}
}
