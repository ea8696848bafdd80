// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports an identifier that matches no known dataset
// or record. It is a resolution outcome, not an I/O failure: callers
// like the pull pipeline branch on it to decide whether to fetch.
type NotFoundError struct {
	// Identifier is the numeric ID or title that failed to resolve.
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset %q not found", e.Identifier)
}

// AmbiguousError reports a title that matches more than one dataset.
// Numeric IDs are unique by construction; titles are not guaranteed
// to be, and a collision must surface rather than pick arbitrarily.
type AmbiguousError struct {
	Identifier string
	// IDs are the numeric IDs of all matching datasets.
	IDs []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("dataset title %q is ambiguous: matches IDs %s",
		e.Identifier, strings.Join(e.IDs, ", "))
}

// TransferError reports a network fetch that exhausted its retries.
// It names the file that failed so the whole-record abort can be
// diagnosed without retry logic leaking into loaders.
type TransferError struct {
	Dataset  string
	Filename string
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("dataset %s: transferring %q: %v", e.Dataset, e.Filename, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// IntegrityError reports content that failed validation: a checksum
// or size mismatch, or an archive entry that would escape its
// extraction directory. Integrity failures abort a pull without
// mutating existing cache state.
type IntegrityError struct {
	Dataset string
	Path    string
	Reason  string
}

func (e *IntegrityError) Error() string {
	if e.Dataset == "" {
		return fmt.Sprintf("integrity: %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("dataset %s: integrity: %s: %s", e.Dataset, e.Path, e.Reason)
}

// FormatError reports a local file whose structure does not match the
// dataset's documented layout. Loaders never silently drop or default
// malformed data; a missing row or column is an error, not a gap.
type FormatError struct {
	Dataset string
	File    string
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dataset %s: parsing %s: %s", e.Dataset, e.File, e.Reason)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsIntegrity reports whether err is or wraps an IntegrityError.
func IsIntegrity(err error) bool {
	var integrity *IntegrityError
	return errors.As(err, &integrity)
}
