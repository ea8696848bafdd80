// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spectra-foundation/spectra/lib/cache"
	"github.com/spectra-foundation/spectra/lib/catalog"
	"github.com/spectra-foundation/spectra/lib/config"
	"github.com/spectra-foundation/spectra/lib/pull"
	"github.com/spectra-foundation/spectra/lib/record"
	"github.com/spectra-foundation/spectra/lib/synclog"
)

// historyFilename is the pull history database, stored inside the
// repository root alongside the per-dataset directories. Dataset
// directories are numeric record IDs, so the name cannot collide.
const historyFilename = "history.db"

// runtime is the wired-up application state shared by every command:
// configuration, the local cache, the Zenodo client, the download
// pipeline, and the dataset registry.
type runtime struct {
	Config   *config.Config
	Cache    *cache.Cache
	Client   *record.Client
	Puller   *pull.Puller
	Registry *catalog.Registry
	Logger   *slog.Logger
}

// newRuntime loads configuration and wires the full stack. Every
// command goes through here, so a broken config fails fast with the
// same message everywhere.
func newRuntime(logger *slog.Logger) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsureRepository(); err != nil {
		return nil, err
	}

	store, err := cache.New(cfg.Repository.Root, logger)
	if err != nil {
		return nil, err
	}

	client := record.NewClient(record.ClientConfig{
		APIURL:            cfg.Zenodo.APIURL,
		Community:         cfg.Zenodo.Community,
		Timeout:           cfg.RequestTimeout(),
		Retries:           cfg.Pull.Retries,
		RequestsPerSecond: cfg.Zenodo.RequestsPerSecond,
		Logger:            logger,
	})

	puller := &pull.Puller{
		Client:      client,
		Cache:       store,
		Logger:      logger,
		Concurrency: cfg.Pull.Concurrency,
	}

	registry, err := catalog.New(puller, store)
	if err != nil {
		return nil, err
	}

	return &runtime{
		Config:   cfg,
		Cache:    store,
		Client:   client,
		Puller:   puller,
		Registry: registry,
		Logger:   logger,
	}, nil
}

// openHistory opens the pull history log in the repository root.
func (r *runtime) openHistory() (*synclog.Log, error) {
	return synclog.Open(filepath.Join(r.Config.Repository.Root, historyFilename), r.Logger)
}
