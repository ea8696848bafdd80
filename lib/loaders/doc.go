// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package loaders parses materialized dataset files into in-memory
// collections. Each loader knows one Zenodo record's on-disk layout
// and file formats; materialization itself (resolving, downloading,
// unpacking, caching) is delegated to a Materializer, in practice the
// pull package.
package loaders
