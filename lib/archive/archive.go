// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive unpacks downloaded dataset archives. Archive
// contents are untrusted remote input: every entry path is validated
// before any byte is written, and an entry that would land outside
// the destination directory aborts the whole extraction with an
// IntegrityError.
package archive

import (
	"archive/tar"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// IsArchive reports whether the filename looks like an archive the
// pipeline should unpack.
func IsArchive(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip", ".tar", ".gz", ".tgz", ".bz2", ".zst":
		return true
	}
	return false
}

// TargetDir returns the directory name an archive unpacks into: the
// archive's base name with the extension removed (including a ".tar"
// left by ".tar.gz" and friends) and remaining dots replaced by
// underscores. Dataset files frequently carry versioned names like
// "multispectral_images_v1.2.zip"; dots in directory names confuse
// downstream glob patterns.
func TargetDir(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if strings.HasSuffix(strings.ToLower(base), ".tar") {
		base = base[:len(base)-len(".tar")]
	}
	return strings.ReplaceAll(base, ".", "_")
}

// Unpack extracts the archive at source into the destination
// directory, dispatching on the file extension. Single-file
// compressed streams (a bare .gz or .bz2 without an inner tar)
// decompress to one file named after the source.
func Unpack(source, destination string) error {
	if err := os.MkdirAll(destination, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", destination, err)
	}

	lower := strings.ToLower(source)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return unpackZip(source, destination)
	case strings.HasSuffix(lower, ".tar"):
		return withFile(source, func(r io.Reader) error {
			return unpackTar(r, source, destination)
		})
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return withFile(source, func(r io.Reader) error {
			gz, err := gzip.NewReader(r)
			if err != nil {
				return fmt.Errorf("opening gzip stream: %w", err)
			}
			defer gz.Close()
			return unpackTar(gz, source, destination)
		})
	case strings.HasSuffix(lower, ".tar.bz2"):
		return withFile(source, func(r io.Reader) error {
			return unpackTar(bzip2.NewReader(r), source, destination)
		})
	case strings.HasSuffix(lower, ".tar.zst"):
		return withFile(source, func(r io.Reader) error {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return fmt.Errorf("opening zstd stream: %w", err)
			}
			defer zr.Close()
			return unpackTar(zr, source, destination)
		})
	case strings.HasSuffix(lower, ".gz"):
		return withFile(source, func(r io.Reader) error {
			gz, err := gzip.NewReader(r)
			if err != nil {
				return fmt.Errorf("opening gzip stream: %w", err)
			}
			defer gz.Close()
			name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			return writeEntry(destination, name, gz, 0644)
		})
	case strings.HasSuffix(lower, ".bz2"):
		return withFile(source, func(r io.Reader) error {
			name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			return writeEntry(destination, name, bzip2.NewReader(r), 0644)
		})
	case strings.HasSuffix(lower, ".zst"):
		return withFile(source, func(r io.Reader) error {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return fmt.Errorf("opening zstd stream: %w", err)
			}
			defer zr.Close()
			name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			return writeEntry(destination, name, zr, 0644)
		})
	}
	return fmt.Errorf("unsupported archive format: %s", source)
}

func withFile(source string, extract func(io.Reader) error) error {
	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening %s: %w", source, err)
	}
	defer f.Close()
	return extract(f)
}

func unpackZip(source, destination string) error {
	reader, err := zip.OpenReader(source)
	if err != nil {
		return fmt.Errorf("opening %s: %w", source, err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			target, err := securePath(destination, entry.Name, source)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			continue
		}

		content, err := entry.Open()
		if err != nil {
			return fmt.Errorf("opening entry %s: %w", entry.Name, err)
		}
		err = writeEntry(destination, entry.Name, content, entry.Mode().Perm())
		content.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func unpackTar(r io.Reader, source, destination string) error {
	reader := tar.NewReader(r)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", source, err)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			target, err := securePath(destination, header.Name, source)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
		case tar.TypeReg:
			mode := os.FileMode(header.Mode).Perm()
			if err := writeEntry(destination, header.Name, reader, mode); err != nil {
				return err
			}
		default:
			// Symlinks, devices, and other special entries have no
			// place in a dataset archive and could alias paths
			// outside the destination.
			return &dataset.IntegrityError{
				Path:   header.Name,
				Reason: fmt.Sprintf("unsupported entry type %d in %s", header.Typeflag, filepath.Base(source)),
			}
		}
	}
}

// writeEntry validates the entry path and streams content to it.
func writeEntry(destination, name string, content io.Reader, mode os.FileMode) error {
	target, err := securePath(destination, name, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}

	if mode == 0 {
		mode = 0644
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return f.Close()
}

// securePath joins an archive entry name onto the destination
// directory, rejecting absolute paths and any name that resolves
// outside the destination.
func securePath(destination, name, source string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || !filepath.IsLocal(cleaned) {
		return "", &dataset.IntegrityError{
			Path:   name,
			Reason: fmt.Sprintf("entry escapes extraction directory (from %s)", filepath.Base(source)),
		}
	}
	return filepath.Join(destination, cleaned), nil
}
