// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset defines the shared data model for parsed datasets
// and the error taxonomy used across the acquisition pipeline.
//
// Every loader produces a [Collection]: an insertion-ordered mapping
// from a human-readable content label to a plain numeric payload (a
// float slice, a [Matrix], a [SpectralTable], or a nested Collection).
// Payloads are deliberately plain; wrapping them into richer
// colour-science objects is the caller's job, and the core holds no
// reference to a Collection after returning it.
package dataset
