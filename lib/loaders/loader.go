// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Materializer resolves a dataset identifier and guarantees its files
// are present locally, returning the dataset directory. pull.Puller
// satisfies it; tests substitute a fixture-backed fake.
type Materializer interface {
	Ensure(ctx context.Context, identifier string) (string, error)
}

// Loader parses one dataset's materialized files into a Collection.
// Load is idempotent: repeated calls re-read the cached files without
// re-downloading anything.
type Loader interface {
	ID() string
	Load(ctx context.Context) (*dataset.Collection, error)
}

// readLines returns the non-empty, whitespace-trimmed lines of path.
func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// parseFloats converts fields to float64s, accepting a decimal comma.
func parseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseFloat(strings.ReplaceAll(field, ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("field %d %q: %w", i, field, err)
		}
		values[i] = value
	}
	return values, nil
}

// formatError builds the uniform malformed-file error for a loader.
func formatError(id, file, format string, args ...any) error {
	return &dataset.FormatError{
		Dataset: id,
		File:    file,
		Reason:  fmt.Sprintf(format, args...),
	}
}
