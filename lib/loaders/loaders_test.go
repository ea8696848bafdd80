// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

func asFormatError(err error, target **dataset.FormatError) bool {
	return errors.As(err, target)
}

// fakeMaterializer serves pre-built fixture directories instead of
// pulling from Zenodo.
type fakeMaterializer struct {
	roots map[string]string
	calls int
}

func (m *fakeMaterializer) Ensure(_ context.Context, identifier string) (string, error) {
	root, ok := m.roots[identifier]
	if !ok {
		return "", &dataset.NotFoundError{Identifier: identifier}
	}
	m.calls++
	return root, nil
}

func newFakeMaterializer(t *testing.T, identifier string) (*fakeMaterializer, string) {
	t.Helper()
	root := t.TempDir()
	return &fakeMaterializer{roots: map[string]string{identifier: root}}, root
}

func writeFixture(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
}

func mustSub(t *testing.T, c *dataset.Collection, label string) *dataset.Collection {
	t.Helper()
	sub, err := c.Sub(label)
	if err != nil {
		t.Fatalf("nested collection %q: %v", label, err)
	}
	return sub
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
