// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spectra-foundation/spectra/cmd/spectra/cli"
	"github.com/spectra-foundation/spectra/cmd/spectra/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return an ExitError
		// with the desired exit code. Don't print a redundant
		// "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --verbose is global and stripped before dispatch so every
	// subcommand shares one logger without re-declaring the flag.
	args, verbose := splitVerbose(os.Args[1:])
	logger := cli.NewCommandLogger(verbose)

	return commands.Root().Execute(ctx, args, logger)
}

// splitVerbose removes --verbose / -v from args and reports whether
// it was present.
func splitVerbose(args []string) ([]string, bool) {
	remaining := make([]string, 0, len(args))
	verbose := false
	for _, arg := range args {
		if arg == "--verbose" || arg == "-v" {
			verbose = true
			continue
		}
		remaining = append(remaining, arg)
	}
	return remaining, verbose
}
