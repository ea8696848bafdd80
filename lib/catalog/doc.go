// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog is the registry of known datasets. The descriptor
// table is embedded at compile time; each descriptor binds a Zenodo
// record to the loader that understands its files. Identifiers
// resolve by numeric ID or by exact title.
package catalog
