// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache is the local dataset store: one directory per
// dataset ID under a single repository root, holding the raw
// downloads, the extracted file tree, and a validated entry snapshot.
//
// Store is atomic from the caller's perspective. A pull stages its
// files elsewhere, Store validates the staging directory against the
// expected manifest, and only a complete, validated tree is renamed
// into the dataset's permanent location. An interrupted or failed
// pull never leaves an entry that Has reports as synced.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/zeebo/blake3"
	"golang.org/x/sys/unix"

	"github.com/spectra-foundation/spectra/lib/codec"
	"github.com/spectra-foundation/spectra/lib/dataset"
)

const (
	// DatasetDir is the subdirectory holding extracted files.
	DatasetDir = "dataset"

	// DownloadsDir is the subdirectory holding raw fetched files.
	DownloadsDir = "downloads"

	// RecordFilename is the persisted record metadata.
	RecordFilename = "record.json"

	// entryFilename is the validated entry snapshot.
	entryFilename = "entry.cbor"
)

// StagedFile is the expectation for one fetched file: what the
// remote manifest said it should be. Size and MD5 are checked during
// Store when present.
type StagedFile struct {
	Filename string `cbor:"filename"`
	Size     int64  `cbor:"size,omitempty"`
	MD5      string `cbor:"md5,omitempty"`
}

// ExtractedFile is one file of the extracted dataset tree, with its
// locally computed BLAKE3 digest.
type ExtractedFile struct {
	Path   string `cbor:"path"`
	Size   int64  `cbor:"size"`
	BLAKE3 string `cbor:"blake3"`
}

// Entry is the snapshot persisted as entry.cbor after a successful
// store. Its presence marks the dataset as synced; its contents are
// what Validate checks staleness against.
type Entry struct {
	ID        string          `cbor:"id"`
	SyncedAt  time.Time       `cbor:"synced_at"`
	Files     []StagedFile    `cbor:"files"`
	Extracted []ExtractedFile `cbor:"extracted"`
}

// Cache is the on-disk dataset store. A single process owns the
// root; cross-process locking is out of scope.
type Cache struct {
	root   string
	logger *slog.Logger
}

// New creates a cache rooted at the given directory, creating it if
// needed.
func New(root string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating cache root %s: %w", root, err)
	}
	return &Cache{root: root, logger: logger}, nil
}

// Root returns the repository root directory.
func (c *Cache) Root() string {
	return c.root
}

// Dir returns the directory owned by a dataset ID, whether or not an
// entry exists there.
func (c *Cache) Dir(id string) string {
	return filepath.Join(c.root, id)
}

// Has reports whether a validated entry exists for the dataset.
func (c *Cache) Has(id string) bool {
	if _, err := os.Stat(filepath.Join(c.Dir(id), entryFilename)); err != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(c.Dir(id), DatasetDir))
	return err == nil && info.IsDir()
}

// Locate returns the extracted dataset directory, or a NotFoundError
// when no entry exists. Absence is an expected resolution outcome
// the pipeline branches on, not a failure.
func (c *Cache) Locate(id string) (string, error) {
	if !c.Has(id) {
		return "", &dataset.NotFoundError{Identifier: id}
	}
	return filepath.Join(c.Dir(id), DatasetDir), nil
}

// Entry loads the persisted entry snapshot for a dataset.
func (c *Cache) Entry(id string) (*Entry, error) {
	data, err := os.ReadFile(filepath.Join(c.Dir(id), entryFilename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &dataset.NotFoundError{Identifier: id}
		}
		return nil, fmt.Errorf("reading entry for %s: %w", id, err)
	}
	var entry Entry
	if err := codec.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding entry for %s: %w", id, err)
	}
	return &entry, nil
}

// Store commits a staged pull. The staging directory must contain a
// downloads/ subtree with every expected file and a dataset/ subtree
// with the extracted content. Each expectation is verified (presence,
// size, MD5 when known), a BLAKE3 manifest of the extracted tree is
// computed, the entry snapshot is written into staging, and the
// complete tree is renamed over any previous entry. On validation
// failure the staging directory is discarded and existing cache state
// is untouched.
//
// Returns the extracted dataset directory of the committed entry.
func (c *Cache) Store(id string, expected []StagedFile, stagingDir string) (string, error) {
	defer os.RemoveAll(stagingDir)

	entry, err := c.buildEntry(id, expected, stagingDir)
	if err != nil {
		return "", err
	}

	data, err := codec.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("encoding entry for %s: %w", id, err)
	}
	if err := os.WriteFile(filepath.Join(stagingDir, entryFilename), data, 0644); err != nil {
		return "", fmt.Errorf("writing entry for %s: %w", id, err)
	}

	target := c.Dir(id)
	previous := target + ".previous"

	// Two renames make the swap. The window where neither directory
	// exists is acceptable: an interrupted swap leaves no entry.cbor
	// at the target, so Has correctly reports unsynced.
	os.RemoveAll(previous)
	if _, err := os.Stat(target); err == nil {
		if err := os.Rename(target, previous); err != nil {
			return "", fmt.Errorf("displacing previous entry for %s: %w", id, err)
		}
	}
	if err := os.Rename(stagingDir, target); err != nil {
		// Roll the previous entry back so a failed swap does not
		// lose the last-known-good state.
		os.Rename(previous, target)
		return "", fmt.Errorf("committing entry for %s: %w", id, err)
	}
	os.RemoveAll(previous)

	c.logger.Info("dataset stored",
		"dataset", id,
		"files", len(entry.Files),
		"extracted", len(entry.Extracted))

	return filepath.Join(target, DatasetDir), nil
}

// buildEntry validates the staging directory and computes the entry
// snapshot.
func (c *Cache) buildEntry(id string, expected []StagedFile, stagingDir string) (*Entry, error) {
	downloads := filepath.Join(stagingDir, DownloadsDir)
	for _, want := range expected {
		path := filepath.Join(downloads, want.Filename)
		info, err := os.Stat(path)
		if err != nil {
			return nil, &dataset.IntegrityError{
				Dataset: id,
				Path:    want.Filename,
				Reason:  "expected file missing from staging",
			}
		}
		if want.Size > 0 && info.Size() != want.Size {
			return nil, &dataset.IntegrityError{
				Dataset: id,
				Path:    want.Filename,
				Reason:  fmt.Sprintf("size %d, manifest says %d", info.Size(), want.Size),
			}
		}
		if want.MD5 != "" {
			digest, err := md5File(path)
			if err != nil {
				return nil, fmt.Errorf("hashing %s: %w", want.Filename, err)
			}
			if digest != want.MD5 {
				return nil, &dataset.IntegrityError{
					Dataset: id,
					Path:    want.Filename,
					Reason:  fmt.Sprintf("MD5 %s, manifest says %s", digest, want.MD5),
				}
			}
		}
	}

	extracted, err := hashTree(filepath.Join(stagingDir, DatasetDir))
	if err != nil {
		return nil, fmt.Errorf("hashing extracted tree for %s: %w", id, err)
	}
	if len(extracted) == 0 {
		return nil, &dataset.IntegrityError{
			Dataset: id,
			Path:    DatasetDir,
			Reason:  "no extracted files in staging",
		}
	}

	return &Entry{
		ID:        id,
		SyncedAt:  time.Now().UTC(),
		Files:     expected,
		Extracted: extracted,
	}, nil
}

// Invalidate removes a dataset's entry entirely.
func (c *Cache) Invalidate(id string) error {
	if err := os.RemoveAll(c.Dir(id)); err != nil {
		return fmt.Errorf("invalidating %s: %w", id, err)
	}
	return nil
}

// Validate checks that the entry for a dataset is still good against
// the expected manifest: the snapshot exists, the stored file list
// matches the manifest (drift in either direction counts as
// staleness), and every extracted file is present with a matching
// BLAKE3 digest. A nil error means the pipeline can short-circuit
// without network I/O.
func (c *Cache) Validate(id string, expected []StagedFile) error {
	entry, err := c.Entry(id)
	if err != nil {
		return err
	}

	stored := make(map[string]StagedFile, len(entry.Files))
	for _, f := range entry.Files {
		stored[f.Filename] = f
	}
	if len(expected) != len(entry.Files) {
		return &dataset.IntegrityError{
			Dataset: id,
			Path:    entryFilename,
			Reason:  fmt.Sprintf("manifest drift: %d files stored, %d expected", len(entry.Files), len(expected)),
		}
	}
	for _, want := range expected {
		have, ok := stored[want.Filename]
		if !ok {
			return &dataset.IntegrityError{
				Dataset: id,
				Path:    want.Filename,
				Reason:  "manifest drift: file not in stored entry",
			}
		}
		if want.MD5 != "" && have.MD5 != "" && want.MD5 != have.MD5 {
			return &dataset.IntegrityError{
				Dataset: id,
				Path:    want.Filename,
				Reason:  "manifest drift: checksum changed upstream",
			}
		}
	}

	root := filepath.Join(c.Dir(id), DatasetDir)
	for _, file := range entry.Extracted {
		digest, size, err := hashFile(filepath.Join(root, file.Path))
		if err != nil {
			return &dataset.IntegrityError{
				Dataset: id,
				Path:    file.Path,
				Reason:  "extracted file missing or unreadable",
			}
		}
		if size != file.Size || digest != file.BLAKE3 {
			return &dataset.IntegrityError{
				Dataset: id,
				Path:    file.Path,
				Reason:  "extracted file modified since sync",
			}
		}
	}

	return nil
}

// CheckFreeSpace verifies the filesystem holding the cache root has
// at least the requested number of bytes available.
func (c *Cache) CheckFreeSpace(required int64) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(c.root, &stat); err != nil {
		return fmt.Errorf("statfs %s: %w", c.root, err)
	}
	available := int64(stat.Bavail) * int64(stat.Bsize)
	if available < required {
		return fmt.Errorf("insufficient space in %s: %d bytes available, %d required",
			c.root, available, required)
	}
	return nil
}

// hashTree walks a directory computing the BLAKE3 manifest of every
// regular file, with paths relative to the root, sorted.
func hashTree(root string) ([]ExtractedFile, error) {
	var files []ExtractedFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		digest, size, err := hashFile(path)
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, ExtractedFile{
			Path:   filepath.ToSlash(relative),
			Size:   size,
			BLAKE3: digest,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// md5File computes the MD5 digest of a file for comparison against
// the remote manifest.
func md5File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := md5.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func hashFile(path string) (digest string, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	hasher := blake3.New()
	size, err = io.Copy(hasher, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(hasher.Sum(nil)), size, nil
}
