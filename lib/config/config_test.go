// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Zenodo.APIURL != "https://zenodo.org/api" {
		t.Errorf("expected api_url=https://zenodo.org/api, got %s", cfg.Zenodo.APIURL)
	}

	if cfg.Zenodo.Community != "colour-science-datasets" {
		t.Errorf("expected community=colour-science-datasets, got %s", cfg.Zenodo.Community)
	}

	if cfg.Pull.Concurrency != 4 {
		t.Errorf("expected concurrency=4, got %d", cfg.Pull.Concurrency)
	}

	if !strings.HasSuffix(cfg.Repository.Root, filepath.Join(".spectra", "datasets")) {
		t.Errorf("expected repository root under .spectra/datasets, got %s", cfg.Repository.Root)
	}
}

func TestLoad_DefaultsWithoutSpectraConfig(t *testing.T) {
	origConfig := os.Getenv("SPECTRA_CONFIG")
	defer os.Setenv("SPECTRA_CONFIG", origConfig)
	os.Unsetenv("SPECTRA_CONFIG")

	origRepo := os.Getenv("SPECTRA_REPOSITORY")
	defer os.Setenv("SPECTRA_REPOSITORY", origRepo)
	os.Unsetenv("SPECTRA_REPOSITORY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Pull.Retries != 3 {
		t.Errorf("expected retries=3, got %d", cfg.Pull.Retries)
	}
}

func TestLoad_WithSpectraConfig(t *testing.T) {
	origConfig := os.Getenv("SPECTRA_CONFIG")
	defer os.Setenv("SPECTRA_CONFIG", origConfig)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "spectra.yaml")

	configContent := `
repository:
  root: /test/datasets
zenodo:
  api_url: https://sandbox.zenodo.org/api
pull:
  concurrency: 2
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("SPECTRA_CONFIG", configPath)

	origRepo := os.Getenv("SPECTRA_REPOSITORY")
	defer os.Setenv("SPECTRA_REPOSITORY", origRepo)
	os.Unsetenv("SPECTRA_REPOSITORY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Repository.Root != "/test/datasets" {
		t.Errorf("expected root=/test/datasets, got %s", cfg.Repository.Root)
	}
	if cfg.Zenodo.APIURL != "https://sandbox.zenodo.org/api" {
		t.Errorf("expected sandbox api url, got %s", cfg.Zenodo.APIURL)
	}
	if cfg.Pull.Concurrency != 2 {
		t.Errorf("expected concurrency=2, got %d", cfg.Pull.Concurrency)
	}
	// Unspecified fields keep defaults.
	if cfg.Zenodo.Community != "colour-science-datasets" {
		t.Errorf("expected default community, got %s", cfg.Zenodo.Community)
	}
}

func TestRepositoryOverride(t *testing.T) {
	origConfig := os.Getenv("SPECTRA_CONFIG")
	defer os.Setenv("SPECTRA_CONFIG", origConfig)
	os.Unsetenv("SPECTRA_CONFIG")

	origRepo := os.Getenv("SPECTRA_REPOSITORY")
	defer os.Setenv("SPECTRA_REPOSITORY", origRepo)
	os.Setenv("SPECTRA_REPOSITORY", "/scratch/datasets")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Repository.Root != "/scratch/datasets" {
		t.Errorf("expected SPECTRA_REPOSITORY to win, got %s", cfg.Repository.Root)
	}
}

func TestExpandVariables(t *testing.T) {
	origConfig := os.Getenv("SPECTRA_CONFIG")
	defer os.Setenv("SPECTRA_CONFIG", origConfig)

	origRepo := os.Getenv("SPECTRA_REPOSITORY")
	defer os.Setenv("SPECTRA_REPOSITORY", origRepo)
	os.Unsetenv("SPECTRA_REPOSITORY")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "spectra.yaml")
	configContent := "repository:\n  root: ${HOME}/datasets\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	os.Setenv("SPECTRA_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	home := os.Getenv("HOME")
	if home != "" && cfg.Repository.Root != filepath.Join(home, "datasets") {
		t.Errorf("expected ${HOME} expansion, got %s", cfg.Repository.Root)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.Repository.Root = ""
	cfg.Pull.Concurrency = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if !strings.Contains(err.Error(), "repository.root") {
		t.Errorf("expected repository.root error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "pull.concurrency") {
		t.Errorf("expected pull.concurrency error, got: %v", err)
	}
}

func TestRequestTimeout(t *testing.T) {
	cfg := Default()
	if cfg.Pull.Timeout != "60s" {
		t.Errorf("expected default timeout=60s, got %q", cfg.Pull.Timeout)
	}
	if cfg.RequestTimeout() != 60*time.Second {
		t.Errorf("expected 60s request timeout, got %v", cfg.RequestTimeout())
	}

	cfg.Pull.Timeout = "2m30s"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("2m30s timeout rejected: %v", err)
	}
	if cfg.RequestTimeout() != 150*time.Second {
		t.Errorf("expected 150s request timeout, got %v", cfg.RequestTimeout())
	}

	for _, bad := range []string{"", "soon", "-5s", "0s"} {
		cfg.Pull.Timeout = bad
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "pull.timeout") {
			t.Errorf("timeout %q: expected pull.timeout error, got: %v", bad, err)
		}
	}
}
