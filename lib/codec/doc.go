// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Spectra's standard CBOR encoding
// configuration.
//
// Spectra uses two serialization formats with a clear boundary:
//
//   - JSON for external interfaces: the Zenodo records API, the
//     record.json files persisted in cache entries, and CLI --json
//     output.
//   - CBOR for internal state: the validated entry snapshot
//     (entry.cbor) each cache entry carries.
//
// This package provides the shared CBOR encoding and decoding modes
// so that every Spectra package encodes identically without
// duplicating configuration. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes, which keeps entry snapshots comparable
// across syncs.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
