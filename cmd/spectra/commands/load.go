// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/spectra-foundation/spectra/cmd/spectra/cli"
	"github.com/spectra-foundation/spectra/lib/dataset"
)

// loadCommand returns the "load" subcommand.
func loadCommand() *cli.Command {
	var jsonOutput bool

	return &cli.Command{
		Name:    "load",
		Summary: "Load a dataset and print its structure",
		Description: `Parse a dataset's files into structured form and print the
resulting collection. The dataset is synced first if no valid local
copy exists.

The default output is a tree of the collection's labels with a
summary of each value. With --json the full parsed content is
emitted instead.`,
		Usage: "spectra load <dataset> [flags]",
		Examples: []cli.Example{
			{
				Description: "Print the structure of a dataset",
				Command:     "spectra load 3245895",
			},
			{
				Description: "Emit the full parsed content as JSON",
				Command:     "spectra load 3245895 --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("load", pflag.ContinueOnError)
			flagSet.BoolVar(&jsonOutput, "json", false, "emit full parsed content as JSON")
			return flagSet
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
			collection, err := rt.Registry.Load(ctx, descriptor.ID)
			if err != nil {
				return err
			}

			if jsonOutput {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(collection)
			}

			fmt.Printf("%s\n\n", descriptor.Describe())
			printCollection(collection, 0)
			return nil
		},
	}
}

// printCollection walks the collection tree, printing one line per
// label with a short summary of the value.
func printCollection(collection *dataset.Collection, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, label := range collection.Keys() {
		value, _ := collection.Get(label)
		if sub, ok := value.(*dataset.Collection); ok {
			fmt.Printf("%s%s/ (%d entries)\n", indent, label, sub.Len())
			printCollection(sub, depth+1)
			continue
		}
		fmt.Printf("%s%s: %s\n", indent, label, describeValue(value))
	}
}

// describeValue renders a one-line summary of a leaf value.
func describeValue(value any) string {
	switch v := value.(type) {
	case *dataset.SpectralTable:
		if len(v.Labels) > 0 {
			return fmt.Sprintf("spectral table, %d wavelengths x %d columns (%s)",
				len(v.Wavelengths), len(v.Columns), strings.Join(v.Labels, ", "))
		}
		return fmt.Sprintf("spectral table, %d wavelengths x %d columns",
			len(v.Wavelengths), len(v.Columns))
	case *dataset.Table:
		rows, columns := v.Values.Shape()
		return fmt.Sprintf("table, %d rows x %d columns", rows, columns)
	case dataset.Matrix:
		rows, columns := v.Shape()
		return fmt.Sprintf("matrix, %d x %d", rows, columns)
	case []float64:
		return fmt.Sprintf("vector, %d values", len(v))
	case string:
		return v
	default:
		return fmt.Sprintf("%T", value)
	}
}
