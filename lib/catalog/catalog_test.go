// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// fakeFetcher serves a fixture directory for one dataset and counts
// materialization calls.
type fakeFetcher struct {
	id      string
	root    string
	ensures int
	pulls   int
}

func (f *fakeFetcher) Ensure(_ context.Context, identifier string) (string, error) {
	if identifier != f.id {
		return "", &dataset.NotFoundError{Identifier: identifier}
	}
	f.ensures++
	return f.root, nil
}

func (f *fakeFetcher) Pull(_ context.Context, identifier string) (string, error) {
	if identifier != f.id {
		return "", &dataset.NotFoundError{Identifier: identifier}
	}
	f.pulls++
	return f.root, nil
}

type fakeProber struct{ synced map[string]bool }

func (p *fakeProber) Has(id string) bool { return p.synced[id] }

func newLabsphereRegistry(t *testing.T) (*Registry, *fakeFetcher) {
	t.Helper()
	root := t.TempDir()
	fixture := "Labsphere SRS-99-020\nWavelength\tReflectance\n250\t0.93\n300\t0.95\n"
	if err := os.WriteFile(filepath.Join(root, "SRS-99-020.txt"), []byte(fixture), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	fetcher := &fakeFetcher{id: "3245875", root: root}
	registry, err := New(fetcher, &fakeProber{synced: map[string]bool{"3245875": true}})
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return registry, fetcher
}

func TestListEveryDatasetOnce(t *testing.T) {
	registry, _ := newLabsphereRegistry(t)

	statuses := registry.List()
	if len(statuses) != 14 {
		t.Fatalf("got %d datasets, want 14", len(statuses))
	}
	seen := make(map[string]bool)
	for i, status := range statuses {
		if seen[status.ID] {
			t.Errorf("ID %s listed twice", status.ID)
		}
		seen[status.ID] = true
		if i > 0 && statuses[i-1].Title > status.Title {
			t.Errorf("titles out of order: %q before %q", statuses[i-1].Title, status.Title)
		}
	}
	for _, status := range statuses {
		want := status.ID == "3245875"
		if status.Synced != want {
			t.Errorf("dataset %s: synced %v, want %v", status.ID, status.Synced, want)
		}
	}
}

func TestGetByIDAndTitle(t *testing.T) {
	registry, _ := newLabsphereRegistry(t)

	byID, err := registry.Get("3245875")
	if err != nil {
		t.Fatalf("by ID: %v", err)
	}
	byTitle, err := registry.Get("Labsphere SRS-99-020 Absolute Reflectance")
	if err != nil {
		t.Fatalf("by title: %v", err)
	}
	if byID != byTitle {
		t.Errorf("ID and title resolved to different descriptors: %+v vs %+v", byID, byTitle)
	}
}

func TestGetUnknown(t *testing.T) {
	registry, _ := newLabsphereRegistry(t)

	for _, identifier := range []string{"999999", "No Such Dataset"} {
		_, err := registry.Get(identifier)
		if !dataset.IsNotFound(err) {
			t.Errorf("identifier %q: got %v, want a NotFoundError", identifier, err)
		}
	}
}

func TestAmbiguousTitle(t *testing.T) {
	// Resolution must surface duplicate titles instead of picking one.
	descriptors := []*Descriptor{
		{ID: "100", Title: "Shared Title"},
		{ID: "200", Title: "Shared Title"},
	}
	registry := &Registry{descriptors: descriptors, byID: map[string]*Descriptor{}}
	for _, descriptor := range descriptors {
		registry.byID[descriptor.ID] = descriptor
	}

	_, err := registry.Get("Shared Title")
	var ambiguous *dataset.AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("got %v, want an AmbiguousError", err)
	}
	if len(ambiguous.IDs) != 2 {
		t.Errorf("got IDs %v, want two", ambiguous.IDs)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	registry, fetcher := newLabsphereRegistry(t)

	first, err := registry.Load(context.Background(), "3245875")
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := registry.Load(context.Background(), "Labsphere SRS-99-020 Absolute Reflectance")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first.Len() != second.Len() {
		t.Errorf("loads disagree: %d vs %d entries", first.Len(), second.Len())
	}
	if fetcher.pulls != 0 {
		t.Errorf("loading forced %d pulls, want 0", fetcher.pulls)
	}
	if fetcher.ensures != 2 {
		t.Errorf("got %d materializations, want 2", fetcher.ensures)
	}
}

func TestSyncForcesPull(t *testing.T) {
	registry, fetcher := newLabsphereRegistry(t)

	if err := registry.Sync(context.Background(), "3245875"); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if fetcher.pulls != 1 {
		t.Errorf("got %d pulls, want 1", fetcher.pulls)
	}
}

func TestParseRejectsUnboundID(t *testing.T) {
	if _, err := parseDescriptors([]byte(`[{"id": "424242", "title": "Mystery"}]`)); err == nil {
		t.Fatal("want an error for an ID with no loader")
	}
}
