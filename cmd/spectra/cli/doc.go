// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command tree framework for the spectra
// binary: command dispatch, flag parsing, help output, typo
// suggestions, and logger construction.
package cli
