// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for Spectra
// commands.
//
// Configuration is loaded from a single file specified by either the
// SPECTRA_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. This ensures deterministic, auditable
// configuration with no hidden overrides.
//
// The one deliberate exception is SPECTRA_REPOSITORY: when set, it
// overrides the local repository directory after the file is loaded.
// Relocating the dataset store is the only setting that must work
// without editing a file (shared caches on CI, scratch disks).
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${SPECTRA_ROOT}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- repository, Zenodo endpoint, and pull settings
//   - [Default] -- returns a Config with working defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other Spectra packages.
package config
