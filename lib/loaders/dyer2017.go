// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Dyer2017ID is the Zenodo record of the Dyer et al. (2017) "RAW to
// ACES Utility Data" dataset.
const Dyer2017ID = "3372171"

// Dyer2017 loads the RAW to ACES spectral documents, grouped by the
// four data directories. Illuminants are single distributions; the
// camera, cmf and training documents are multi-channel.
type Dyer2017 struct {
	materializer Materializer
}

func NewDyer2017(m Materializer) *Dyer2017 {
	return &Dyer2017{materializer: m}
}

func (l *Dyer2017) ID() string { return Dyer2017ID }

func (l *Dyer2017) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Dyer2017ID)
	if err != nil {
		return nil, err
	}

	content := dataset.NewCollection()
	for _, directory := range []string{"camera", "cmf", "illuminant", "training"} {
		group, err := readAMPASDirectory(
			filepath.Join(root, "data", directory), Dyer2017ID, directory != "illuminant")
		if err != nil {
			return nil, err
		}
		content.Set(directory, group)
	}
	return content, nil
}

// readAMPASDirectory parses every JSON document under dir into a
// Collection keyed by document name, in sorted path order.
func readAMPASDirectory(dir, id string, multi bool) (*dataset.Collection, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	group := dataset.NewCollection()
	for _, path := range paths {
		document, err := readAMPAS(path, multi)
		if err != nil {
			return nil, formatError(id, filepath.Base(path), "%v", err)
		}
		group.Set(document.Name, document)
	}
	return group, nil
}
