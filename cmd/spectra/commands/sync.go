// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/spectra-foundation/spectra/cmd/spectra/cli"
	"github.com/spectra-foundation/spectra/lib/synclog"
)

// syncCommand returns the "sync" subcommand.
func syncCommand() *cli.Command {
	var all bool
	var force bool

	return &cli.Command{
		Name:    "sync",
		Summary: "Download datasets into the local repository",
		Description: `Download a dataset's files from Zenodo, verify their
checksums, extract archives, and commit the result to the local
repository. A dataset whose local copy is already valid is skipped
unless --force is given.

Every attempt is recorded in the pull history ("spectra history").`,
		Usage: "spectra sync <dataset> | spectra sync --all",
		Examples: []cli.Example{
			{
				Description: "Sync one dataset by record ID",
				Command:     "spectra sync 3245895",
			},
			{
				Description: "Re-download even if the local copy is valid",
				Command:     "spectra sync 3245895 --force",
			},
			{
				Description: "Sync every dataset in the registry",
				Command:     "spectra sync --all",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("sync", pflag.ContinueOnError)
			flagSet.BoolVar(&all, "all", false, "sync every dataset in the registry")
			flagSet.BoolVar(&force, "force", false, "refetch even when the local copy is valid")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if all && len(args) > 0 {
				return fmt.Errorf("--all takes no dataset argument")
			}
			if !all && len(args) != 1 {
				return fmt.Errorf("expected exactly one dataset identifier, got %d (or use --all)", len(args))
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

			if all {
				return syncAll(ctx, rt, history, force)
			}

			descriptor, err := rt.Registry.Get(args[0])
			if err != nil {
				return err
			}
			return syncOne(ctx, rt, history, descriptor.ID, descriptor.Title, force)
		},
	}
}

// syncOne pulls a single dataset and records the attempt in the pull
// history. History write failures are logged, not fatal: the dataset
// is already on disk and the log is observational.
func syncOne(ctx context.Context, rt *runtime, history *synclog.Log, id, title string, force bool) error {
	stats := &pullStats{}
	rt.Puller.Observer = stats
	defer func() { rt.Puller.Observer = nil }()

	started := time.Now()
	var err error
	if force {
		_, err = rt.Puller.Pull(ctx, id)
	} else {
		_, err = rt.Puller.Ensure(ctx, id)
	}

	event := synclog.Event{
		DatasetID: id,
		Title:     title,
		StartedAt: started,
		Duration:  time.Since(started),
		Files:     stats.files,
		Bytes:     stats.bytes,
		Outcome:   synclog.OutcomeSuccess,
	}
	if err != nil {
		event.Outcome = synclog.OutcomeFailure
		event.Error = err.Error()
	}
	if recordErr := history.Record(ctx, event); recordErr != nil {
		rt.Logger.Warn("recording pull history failed", "error", recordErr)
	}

	if err != nil {
		return fmt.Errorf("syncing %s: %w", id, err)
	}
	if stats.files == 0 {
		fmt.Printf("%s: up to date\n", title)
	} else {
		fmt.Printf("%s: %d files, %s in %s\n",
			title, stats.files, humanize.Bytes(uint64(stats.bytes)),
			time.Since(started).Round(time.Millisecond))
	}
	return nil
}

// syncAll pulls every dataset in the registry, continuing past
// individual failures. A partial failure exits non-zero after the
// failures have been listed.
func syncAll(ctx context.Context, rt *runtime, history *synclog.Log, force bool) error {
	var failures int
	for _, status := range rt.Registry.List() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := syncOne(ctx, rt, history, status.ID, status.Title, force); err != nil {
			fmt.Printf("%s: %v\n", status.Title, err)
			failures++
		}
	}
	if failures > 0 {
		fmt.Printf("\n%d dataset(s) failed to sync\n", failures)
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// pullStats tallies transfer progress. The pipeline calls it from
// its fetch goroutines.
type pullStats struct {
	mu    sync.Mutex
	files int
	bytes int64
}

func (s *pullStats) FileStarted(datasetID, filename string, size int64) {}

func (s *pullStats) FileDone(datasetID, filename string, bytes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files++
	s.bytes += bytes
}

func (s *pullStats) PullDone(datasetID string, files int, bytes int64) {}
