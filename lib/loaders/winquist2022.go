// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Winquist2022ID is the Zenodo record of the Winquist et al. (2022)
// "Quantitative Evaluation of Color Matching Approaches" dataset.
const Winquist2022ID = "6590768"

// Winquist2022 loads the camera sensitivity documents: a flat
// directory of multi-channel A.M.P.A.S. spectral JSON files.
type Winquist2022 struct {
	materializer Materializer
}

func NewWinquist2022(m Materializer) *Winquist2022 {
	return &Winquist2022{materializer: m}
}

func (l *Winquist2022) ID() string { return Winquist2022ID }

func (l *Winquist2022) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Winquist2022ID)
	if err != nil {
		return nil, err
	}
	return readAMPASDirectory(root, Winquist2022ID, true)
}
