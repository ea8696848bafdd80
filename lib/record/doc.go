// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package record models remote Zenodo records and provides the HTTP
// client that resolves and downloads them.
//
// A [Record] is the immutable manifest of one remote archive unit:
// its numeric ID, title, and the list of files with their source URLs
// and MD5 checksums. Records are obtained from the [Client] either
// directly by ID or by listing a community and matching an exact
// title.
//
// The client owns all transport concerns: request rate limiting,
// bounded retry with exponential backoff on transient failures, and
// checksum verification of downloaded content. Callers above it (the
// pull pipeline) never see a retriable error; they see either success
// or a terminal failure from the taxonomy in lib/dataset.
package record
