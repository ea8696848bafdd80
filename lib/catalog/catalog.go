// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	_ "embed"

	"github.com/tidwall/jsonc"

	"github.com/spectra-foundation/spectra/lib/dataset"
	"github.com/spectra-foundation/spectra/lib/loaders"
)

//go:embed datasets.jsonc
var datasetsSource []byte

// Descriptor is one catalog entry: a Zenodo record the registry knows
// how to load.
type Descriptor struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Citation string `json:"citation"`
}

// Status is a catalog entry plus its local cache state, as reported
// by List.
type Status struct {
	ID     string
	Title  string
	Synced bool
}

// loaderFactories binds each record ID to its loader constructor.
// Every descriptor in datasets.jsonc must have a binding; Parse
// rejects a table that references an unbound ID.
var loaderFactories = map[string]func(loaders.Materializer) loaders.Loader{
	loaders.Asano2015ID:     func(m loaders.Materializer) loaders.Loader { return loaders.NewAsano2015(m) },
	loaders.Brendel2020ID:   func(m loaders.Materializer) loaders.Loader { return loaders.NewBrendel2020(m) },
	loaders.Dyer2017ID:      func(m loaders.Materializer) loaders.Loader { return loaders.NewDyer2017(m) },
	loaders.Ebner1998ID:     func(m loaders.Materializer) loaders.Loader { return loaders.NewEbner1998(m) },
	loaders.Hung1995ID:      func(m loaders.Materializer) loaders.Loader { return loaders.NewHung1995(m) },
	loaders.Jakob2019ID:     func(m loaders.Materializer) loaders.Loader { return loaders.NewJakob2019(m) },
	loaders.Jiang2013ID:     func(m loaders.Materializer) loaders.Loader { return loaders.NewJiang2013(m) },
	loaders.Karge2015ID:     func(m loaders.Materializer) loaders.Loader { return loaders.NewKarge2015(m) },
	loaders.Labsphere2019ID: func(m loaders.Materializer) loaders.Loader { return loaders.NewLabsphere2019(m) },
	loaders.Luo1999ID:       func(m loaders.Materializer) loaders.Loader { return loaders.NewLuo1999(m) },
	loaders.Solomotav2023ID: func(m loaders.Materializer) loaders.Loader { return loaders.NewSolomotav2023(m) },
	loaders.Winquist2022ID:  func(m loaders.Materializer) loaders.Loader { return loaders.NewWinquist2022(m) },
	loaders.XRite2016ID:     func(m loaders.Materializer) loaders.Loader { return loaders.NewXRite2016(m) },
	loaders.Zhao2009ID:      func(m loaders.Materializer) loaders.Loader { return loaders.NewZhao2009(m) },
}

// Fetcher materializes dataset files. Ensure reuses a valid cache
// entry; Pull always refetches. pull.Puller satisfies it.
type Fetcher interface {
	Ensure(ctx context.Context, identifier string) (string, error)
	Pull(ctx context.Context, identifier string) (string, error)
}

// CacheProber reports whether a dataset is present locally. It is
// consulted by List only; probing never touches the network.
type CacheProber interface {
	Has(id string) bool
}

// Registry resolves identifiers against the embedded descriptor
// table and dispatches loads to the bound loaders.
type Registry struct {
	fetcher Fetcher
	prober  CacheProber

	// descriptors is ordered by title; byID indexes the same values.
	descriptors []*Descriptor
	byID        map[string]*Descriptor
}

// New builds a Registry over the embedded descriptor table.
func New(fetcher Fetcher, prober CacheProber) (*Registry, error) {
	descriptors, err := parseDescriptors(datasetsSource)
	if err != nil {
		return nil, err
	}
	registry := &Registry{
		fetcher:     fetcher,
		prober:      prober,
		descriptors: descriptors,
		byID:        make(map[string]*Descriptor, len(descriptors)),
	}
	for _, descriptor := range descriptors {
		registry.byID[descriptor.ID] = descriptor
	}
	return registry, nil
}

// parseDescriptors strips JSONC comments, unmarshals the table, and
// validates it: IDs must be numeric, unique, and bound to a loader.
func parseDescriptors(source []byte) ([]*Descriptor, error) {
	var descriptors []*Descriptor
	if err := json.Unmarshal(jsonc.ToJSON(source), &descriptors); err != nil {
		return nil, fmt.Errorf("parsing dataset table: %w", err)
	}

	seen := make(map[string]bool, len(descriptors))
	for _, descriptor := range descriptors {
		if _, err := strconv.ParseUint(descriptor.ID, 10, 64); err != nil {
			return nil, fmt.Errorf("dataset table: ID %q is not numeric", descriptor.ID)
		}
		if descriptor.Title == "" {
			return nil, fmt.Errorf("dataset table: ID %s has no title", descriptor.ID)
		}
		if seen[descriptor.ID] {
			return nil, fmt.Errorf("dataset table: duplicate ID %s", descriptor.ID)
		}
		seen[descriptor.ID] = true
		if loaderFactories[descriptor.ID] == nil {
			return nil, fmt.Errorf("dataset table: ID %s has no loader", descriptor.ID)
		}
	}
	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Title < descriptors[j].Title
	})
	return descriptors, nil
}

// List reports every known dataset with its cache state, ordered by
// title.
func (r *Registry) List() []Status {
	statuses := make([]Status, len(r.descriptors))
	for i, descriptor := range r.descriptors {
		statuses[i] = Status{
			ID:     descriptor.ID,
			Title:  descriptor.Title,
			Synced: r.prober != nil && r.prober.Has(descriptor.ID),
		}
	}
	return statuses
}

// Get resolves an identifier to its descriptor. A numeric identifier
// is an ID lookup; anything else must match exactly one title.
func (r *Registry) Get(identifier string) (*Descriptor, error) {
	if _, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		if descriptor, ok := r.byID[identifier]; ok {
			return descriptor, nil
		}
		return nil, &dataset.NotFoundError{Identifier: identifier}
	}

	var matches []*Descriptor
	for _, descriptor := range r.descriptors {
		if descriptor.Title == identifier {
			matches = append(matches, descriptor)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &dataset.NotFoundError{Identifier: identifier}
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, match := range matches {
			ids[i] = match.ID
		}
		return nil, &dataset.AmbiguousError{Identifier: identifier, IDs: ids}
	}
}

// Loader returns the loader bound to an identifier's dataset.
func (r *Registry) Loader(identifier string) (loaders.Loader, error) {
	descriptor, err := r.Get(identifier)
	if err != nil {
		return nil, err
	}
	return loaderFactories[descriptor.ID](r.fetcher), nil
}

// Load resolves, materializes and parses a dataset. A second call
// with a warm cache reparses local files without touching the
// network.
func (r *Registry) Load(ctx context.Context, identifier string) (*dataset.Collection, error) {
	loader, err := r.Loader(identifier)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx)
}

// Sync forces a refetch of one dataset.
func (r *Registry) Sync(ctx context.Context, identifier string) error {
	descriptor, err := r.Get(identifier)
	if err != nil {
		return err
	}
	if _, err := r.fetcher.Pull(ctx, descriptor.ID); err != nil {
		return err
	}
	return nil
}

// SyncAll refetches every known dataset, continuing past individual
// failures and reporting them together.
func (r *Registry) SyncAll(ctx context.Context) error {
	var errs []error
	for _, descriptor := range r.descriptors {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := r.fetcher.Pull(ctx, descriptor.ID); err != nil {
			errs = append(errs, fmt.Errorf("dataset %s: %w", descriptor.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Describe renders a descriptor for display: "<title> - <citation>".
func (d *Descriptor) Describe() string {
	if d.Citation == "" {
		return d.Title
	}
	return strings.Join([]string{d.Title, d.Citation}, " - ")
}
