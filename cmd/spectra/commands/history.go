// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/spectra-foundation/spectra/cmd/spectra/cli"
	"github.com/spectra-foundation/spectra/lib/synclog"
)

// historyCommand returns the "history" subcommand.
func historyCommand() *cli.Command {
	var limit int

	return &cli.Command{
		Name:    "history",
		Summary: "Show recent pull activity",
		Description: `Show recent dataset pulls recorded by "spectra sync", newest
first: when each pull ran, how much it transferred, and whether it
succeeded.`,
		Usage: "spectra history [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the most recent pulls",
				Command:     "spectra history",
			},
			{
				Description: "Show the last 10 pulls",
				Command:     "spectra history --limit 10",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("history", pflag.ContinueOnError)
			flagSet.IntVar(&limit, "limit", 0, "maximum events to show (default 50)")
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

			history, err := rt.openHistory()
			if err != nil {
				return err
			}
			defer history.Close()

			events, err := history.Recent(ctx, limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("no pull history")
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "WHEN\tDATASET\tFILES\tSIZE\tDURATION\tOUTCOME")
			for _, event := range events {
				outcome := event.Outcome
				if event.Outcome == synclog.OutcomeFailure && event.Error != "" {
					outcome = fmt.Sprintf("failure: %s", event.Error)
				}
				fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%s\t%s\n",
					humanize.Time(event.StartedAt),
					event.Title,
					event.Files,
					humanize.Bytes(uint64(event.Bytes)),
					event.Duration.Round(time.Millisecond),
					outcome,
				)
			}
			return writer.Flush()
		},
	}
}
