// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spectra-foundation/spectra/cmd/spectra/cli"
)

// browseCommand returns the "browse" subcommand that launches the
// interactive dataset browser TUI.
func browseCommand() *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Summary: "Interactive dataset browser",
		Description: `Launch an interactive terminal UI listing every dataset in the
registry with its sync state. Datasets can be synced directly from
the list; pulls run in the background and the list updates as they
finish.`,
		Usage: "spectra browse",
		Examples: []cli.Example{
			{
				Description: "Open the dataset browser",
				Command:     "spectra browse",
			},
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

			model := newBrowseModel(ctx, rt, history)
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
}
