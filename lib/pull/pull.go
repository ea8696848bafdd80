// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package pull is the download and unpack pipeline: given a dataset
// identifier, it guarantees the cache holds a valid, fully extracted
// copy of the record's files, fetching only when the entry is absent
// or stale.
//
// Failure semantics are all-or-nothing. Files are fetched into a
// staging directory; completion of every file is a barrier before
// extraction begins; only a fully validated staging tree is committed
// to the cache. Any failure discards staging and leaves the cache in
// its last-known-good state.
package pull

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spectra-foundation/spectra/lib/archive"
	"github.com/spectra-foundation/spectra/lib/cache"
	"github.com/spectra-foundation/spectra/lib/dataset"
	"github.com/spectra-foundation/spectra/lib/record"
)

// Client is the remote side of the pipeline, satisfied by
// record.Client and faked in tests.
type Client interface {
	Resolve(ctx context.Context, identifier string) (*record.Record, error)
	Download(ctx context.Context, recordID string, file record.File, destination string) error
}

// Observer receives progress events during a pull. All methods may
// be called from the fetch goroutines; implementations serialize as
// needed. A nil Observer on the Puller disables reporting entirely.
type Observer interface {
	FileStarted(datasetID, filename string, size int64)
	FileDone(datasetID, filename string, bytes int64)
	PullDone(datasetID string, files int, bytes int64)
}

// Puller orchestrates fetch, integrity check, extraction, and cache
// commit for one record at a time. Concurrent pulls of distinct
// datasets are safe; callers wanting parallel pulls of the same ID
// must serialize themselves.
type Puller struct {
	Client Client
	Cache  *cache.Cache
	Logger *slog.Logger

	// Observer, when set, receives progress events.
	Observer Observer

	// Concurrency bounds parallel file fetches within one record.
	// Zero means 4.
	Concurrency int
}

func (p *Puller) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Ensure returns the extracted dataset directory, pulling only when
// the cache entry is absent or fails validation against the freshly
// resolved record manifest. A valid entry short-circuits without any
// file transfer.
func (p *Puller) Ensure(ctx context.Context, identifier string) (string, error) {
	rec, err := p.Client.Resolve(ctx, identifier)
	if err != nil {
		return "", err
	}
	if err := checkFilenames(rec); err != nil {
		return "", err
	}

	if p.Cache.Has(rec.ID) {
		expected := expectations(rec)
		if err := p.Cache.Validate(rec.ID, expected); err == nil {
			p.logger().Debug("cache hit", "dataset", rec.ID)
			return p.Cache.Locate(rec.ID)
		}
		p.logger().Info("cache entry stale, refetching", "dataset", rec.ID)
	}

	return p.pull(ctx, rec)
}

// Pull forces a refetch of the dataset regardless of cache state.
func (p *Puller) Pull(ctx context.Context, identifier string) (string, error) {
	rec, err := p.Client.Resolve(ctx, identifier)
	if err != nil {
		return "", err
	}
	if err := checkFilenames(rec); err != nil {
		return "", err
	}
	return p.pull(ctx, rec)
}

// checkFilenames rejects records whose manifest names a file outside
// the dataset directory. Filenames come from the remote service and
// are joined into staging and cache paths verbatim; ParseRecord
// rejects them at decode time, and this guard covers every other way
// a Record can reach the pipeline.
func checkFilenames(rec *record.Record) error {
	for _, file := range rec.Files {
		cleaned := filepath.Clean(filepath.FromSlash(file.Filename))
		if filepath.IsAbs(cleaned) || !filepath.IsLocal(cleaned) {
			return &dataset.IntegrityError{
				Dataset: rec.ID,
				Path:    file.Filename,
				Reason:  "file name escapes the dataset directory",
			}
		}
	}
	return nil
}

func (p *Puller) pull(ctx context.Context, rec *record.Record) (string, error) {
	p.logger().Info("pulling dataset", "dataset", rec.ID, "title", rec.Title)

	files := downloadPlan(rec)
	expected := expectations(rec)

	var total int64
	for _, file := range files {
		total += file.Size
	}
	// Downloads plus the extracted copy.
	if err := p.Cache.CheckFreeSpace(total * 2); err != nil {
		return "", err
	}

	// Staging under the cache root keeps the final rename on one
	// filesystem.
	staging, err := os.MkdirTemp(p.Cache.Root(), ".staging-"+rec.ID+"-")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	downloads := filepath.Join(staging, cache.DownloadsDir)
	if err := os.MkdirAll(downloads, 0755); err != nil {
		return "", fmt.Errorf("creating downloads directory: %w", err)
	}

	// urls.txt precedence: when the record carries a provenance
	// manifest, fetch it first and prefer the original source URLs
	// it lists over the record's own file links.
	files, manifestData, err := p.applyURLsManifest(ctx, rec, files, downloads)
	if err != nil {
		return "", err
	}

	if err := p.fetchAll(ctx, rec.ID, files, downloads); err != nil {
		return "", err
	}

	if err := extractAll(rec.ID, staging); err != nil {
		return "", err
	}

	recordJSON, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encoding record metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(staging, cache.RecordFilename), recordJSON, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", cache.RecordFilename, err)
	}
	if err := os.WriteFile(filepath.Join(staging, record.URLsManifestFilename), manifestData, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", record.URLsManifestFilename, err)
	}

	dir, err := p.Cache.Store(rec.ID, expected, staging)
	if err != nil {
		return "", err
	}

	if p.Observer != nil {
		p.Observer.PullDone(rec.ID, len(files), total)
	}
	return dir, nil
}

// applyURLsManifest downloads and applies the record's urls.txt when
// present. It returns the possibly rewritten download plan and the
// manifest bytes to persist in the cache entry (synthesized from the
// record links when the record has no manifest). A manifest that
// fails to download or parse is logged and ignored; the record's own
// links still work.
func (p *Puller) applyURLsManifest(ctx context.Context, rec *record.Record, files []record.File, downloads string) ([]record.File, []byte, error) {
	fallback := func() ([]record.File, []byte, error) {
		urls := make(map[string]string, len(files))
		for _, file := range files {
			urls[file.Filename] = file.URL
		}
		return files, record.FormatURLsManifest(urls), nil
	}

	manifestFile, ok := rec.ManifestFile()
	if !ok {
		return fallback()
	}

	destination := filepath.Join(downloads, record.URLsManifestFilename)
	if err := p.Client.Download(ctx, rec.ID, manifestFile, destination); err != nil {
		if ctx.Err() != nil {
			return nil, nil, err
		}
		// The record's own links still work without the manifest.
		p.logger().Warn("urls manifest unavailable, using record links",
			"dataset", rec.ID, "error", err)
		return fallback()
	}
	data, err := os.ReadFile(destination)
	if err != nil {
		return nil, nil, fmt.Errorf("reading downloaded manifest: %w", err)
	}
	// The manifest is provenance metadata, not a dataset file.
	os.Remove(destination)

	urls, err := record.ParseURLsManifest(bytes.NewReader(data))
	if err != nil {
		p.logger().Warn("ignoring malformed urls manifest",
			"dataset", rec.ID, "error", err)
		urls = nil
	}

	rewritten := make([]record.File, len(files))
	copy(rewritten, files)
	for i := range rewritten {
		if source, ok := urls[rewritten[i].Filename]; ok {
			rewritten[i].URL = source
		}
	}
	return rewritten, data, nil
}

// fetchAll downloads every file concurrently, bounded by
// Concurrency. All fetches complete (or the context is cancelled)
// before it returns: extraction never starts on a partial set.
func (p *Puller) fetchAll(ctx context.Context, datasetID string, files []record.File, downloads string) error {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	semaphore := make(chan struct{}, concurrency)
	var wait sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, file := range files {
		wait.Add(1)
		go func(file record.File) {
			defer wait.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				return
			}

			if p.Observer != nil {
				p.Observer.FileStarted(datasetID, file.Filename, file.Size)
			}

			destination := filepath.Join(downloads, file.Filename)
			err := p.Client.Download(ctx, datasetID, file, destination)

			mu.Lock()
			if err != nil && firstErr == nil {
				firstErr = err
				cancel()
			}
			mu.Unlock()

			if err == nil && p.Observer != nil {
				size := file.Size
				if info, statErr := os.Stat(destination); statErr == nil {
					size = info.Size()
				}
				p.Observer.FileDone(datasetID, file.Filename, size)
			}
		}(file)
	}

	wait.Wait()
	return firstErr
}

// extractAll copies the downloads into the dataset tree and unpacks
// every archive in place. Archive members replace the archive itself
// in the extracted tree, under a directory named after the archive.
func extractAll(datasetID, staging string) error {
	downloads := filepath.Join(staging, cache.DownloadsDir)
	extracted := filepath.Join(staging, cache.DatasetDir)
	if err := os.MkdirAll(extracted, 0755); err != nil {
		return fmt.Errorf("creating dataset directory: %w", err)
	}

	entries, err := os.ReadDir(downloads)
	if err != nil {
		return fmt.Errorf("listing downloads: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		source := filepath.Join(downloads, name)

		if archive.IsArchive(name) {
			target := filepath.Join(extracted, archive.TargetDir(name))
			if err := archive.Unpack(source, target); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(source, filepath.Join(extracted, name)); err != nil {
			return fmt.Errorf("dataset %s: placing %s: %w", datasetID, name, err)
		}
	}
	return nil
}

// expectations converts a record's data files to the cache's staged
// file expectations.
func expectations(rec *record.Record) []cache.StagedFile {
	files := rec.DataFiles()
	expected := make([]cache.StagedFile, len(files))
	for i, file := range files {
		expected[i] = cache.StagedFile{
			Filename: file.Filename,
			Size:     file.Size,
			MD5:      file.MD5,
		}
	}
	return expected
}

// downloadPlan is the set of files to fetch: every data file of the
// record, manifest excluded.
func downloadPlan(rec *record.Record) []record.File {
	return rec.DataFiles()
}

func copyFile(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(destination)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
