// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for Spectra.
type Config struct {
	// Repository configures the local dataset store.
	Repository RepositoryConfig `yaml:"repository"`

	// Zenodo configures the remote record service.
	Zenodo ZenodoConfig `yaml:"zenodo"`

	// Pull configures the download pipeline.
	Pull PullConfig `yaml:"pull"`
}

// RepositoryConfig configures the on-disk dataset repository.
type RepositoryConfig struct {
	// Root is the directory holding one subdirectory per dataset ID.
	// Default: ${HOME}/.spectra/datasets
	Root string `yaml:"root"`
}

// ZenodoConfig configures the Zenodo API client.
type ZenodoConfig struct {
	// APIURL is the base URL of the records API.
	// Default: https://zenodo.org/api
	APIURL string `yaml:"api_url"`

	// Community is the Zenodo community whose records form the
	// dataset registry.
	// Default: colour-science-datasets
	Community string `yaml:"community"`

	// RequestsPerSecond caps the request rate against the API.
	// Default: 5
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// PullConfig configures dataset downloads.
type PullConfig struct {
	// Concurrency is the number of files fetched in parallel per
	// dataset.
	// Default: 4
	Concurrency int `yaml:"concurrency"`

	// Retries is the number of times a failed file transfer is
	// reattempted before the pull aborts.
	// Default: 3
	Retries int `yaml:"retries"`

	// Timeout bounds each individual HTTP request, as a Go duration
	// string.
	// Default: 60s
	Timeout string `yaml:"timeout"`
}

// RequestTimeout returns the parsed Pull.Timeout. Call Validate
// first; a value that fails to parse there falls back to the
// default here.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Pull.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// Default returns the default configuration. Unlike most of the
// toolchain's configuration handling, Spectra works out of the box
// without a config file: every field has a usable default and the
// file only narrows or relocates them.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Repository: RepositoryConfig{
			Root: filepath.Join(homeDir, ".spectra", "datasets"),
		},
		Zenodo: ZenodoConfig{
			APIURL:            "https://zenodo.org/api",
			Community:         "colour-science-datasets",
			RequestsPerSecond: 5,
		},
		Pull: PullConfig{
			Concurrency: 4,
			Retries:     3,
			Timeout:     "60s",
		},
	}
}

// Load loads configuration from the file named by the SPECTRA_CONFIG
// environment variable, or returns defaults when it is unset. The
// SPECTRA_REPOSITORY override is applied either way.
func Load() (*Config, error) {
	configPath := os.Getenv("SPECTRA_CONFIG")
	if configPath == "" {
		cfg := Default()
		cfg.applyRepositoryOverride()
		cfg.expandVariables()
		return cfg, nil
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the source of truth; environment variables do
// not override its values, with the single documented exception of
// SPECTRA_REPOSITORY. The only expansion performed is ${HOME} and
// similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyRepositoryOverride()
	cfg.expandVariables()

	return cfg, nil
}

// applyRepositoryOverride applies SPECTRA_REPOSITORY when set.
func (c *Config) applyRepositoryOverride() {
	if root := os.Getenv("SPECTRA_REPOSITORY"); root != "" {
		c.Repository.Root = root
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Repository.Root = expandVars(c.Repository.Root, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Repository.Root == "" {
		errs = append(errs, fmt.Errorf("repository.root is required"))
	}
	if c.Zenodo.APIURL == "" {
		errs = append(errs, fmt.Errorf("zenodo.api_url is required"))
	}
	if c.Zenodo.Community == "" {
		errs = append(errs, fmt.Errorf("zenodo.community is required"))
	}
	if c.Zenodo.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("zenodo.requests_per_second must be positive"))
	}
	if c.Pull.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("pull.concurrency must be at least 1"))
	}
	if c.Pull.Retries < 0 {
		errs = append(errs, fmt.Errorf("pull.retries must not be negative"))
	}
	if d, err := time.ParseDuration(c.Pull.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("pull.timeout is not a duration: %q", c.Pull.Timeout))
	} else if d <= 0 {
		errs = append(errs, fmt.Errorf("pull.timeout must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsureRepository creates the repository root if it does not exist.
func (c *Config) EnsureRepository() error {
	if err := os.MkdirAll(c.Repository.Root, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", c.Repository.Root, err)
	}
	return nil
}
