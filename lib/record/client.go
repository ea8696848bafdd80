// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// ClientConfig configures the Zenodo API client.
type ClientConfig struct {
	// APIURL is the base URL of the records API, without a trailing
	// slash (e.g. "https://zenodo.org/api").
	APIURL string

	// Community is the Zenodo community whose records form the
	// dataset registry.
	Community string

	// Timeout for individual requests. Default: 60s.
	Timeout time.Duration

	// Retries is the number of reattempts after a transient failure.
	// Default: 3.
	Retries int

	// RequestsPerSecond caps the request rate. Default: 5.
	RequestsPerSecond float64

	// Logger receives transfer diagnostics. Defaults to
	// slog.Default.
	Logger *slog.Logger

	// Transport allows injecting a custom HTTP transport for tests.
	Transport http.RoundTripper
}

// Client resolves and downloads Zenodo records. It owns rate
// limiting, bounded retry with exponential backoff, and checksum
// verification; callers see either success or a terminal error.
type Client struct {
	apiURL     string
	community  string
	retries    int
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	// listing caches the community records for the process lifetime.
	// Title resolution fetches it once, not once per lookup.
	mu      sync.Mutex
	listing []*Record
}

// NewClient creates a Zenodo client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Retries == 0 {
		cfg.Retries = 3
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		apiURL:    cfg.APIURL,
		community: cfg.Community,
		retries:   cfg.Retries,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  cfg.Logger,
	}
}

// Record fetches the record with the given numeric ID.
func (c *Client) Record(ctx context.Context, id string) (*Record, error) {
	data, err := c.get(ctx, fmt.Sprintf("%s/records/%s", c.apiURL, id))
	if err != nil {
		var status *statusError
		if errors.As(err, &status) && status.code == http.StatusNotFound {
			return nil, &dataset.NotFoundError{Identifier: id}
		}
		return nil, fmt.Errorf("fetching record %s: %w", id, err)
	}
	return ParseRecord(data)
}

// Community lists all records of the configured community. The
// listing is fetched once and cached for the process lifetime.
func (c *Client) Community(ctx context.Context) ([]*Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listing != nil {
		return c.listing, nil
	}

	target := fmt.Sprintf("%s/communities/%s/records?size=500", c.apiURL, c.community)
	data, err := c.get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("listing community %s: %w", c.community, err)
	}
	records, err := ParseCommunity(data)
	if err != nil {
		return nil, err
	}
	c.listing = records
	return records, nil
}

// Resolve maps an identifier to a Record. A numeric identifier is
// treated as a record ID; anything else as an exact title to match
// against the community listing. Title collisions fail with
// AmbiguousError rather than picking arbitrarily.
func (c *Client) Resolve(ctx context.Context, identifier string) (*Record, error) {
	if _, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		return c.Record(ctx, identifier)
	}

	records, err := c.Community(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*Record
	for _, r := range records {
		if r.Title == identifier {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &dataset.NotFoundError{Identifier: identifier}
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, r := range matches {
			ids[i] = r.ID
		}
		return nil, &dataset.AmbiguousError{Identifier: identifier, IDs: ids}
	}
}

// Download fetches one file to destination, verifying its MD5
// checksum when the manifest supplies one. Transient failures and
// checksum mismatches are retried with exponential backoff; after
// exhausting retries the error is a TransferError naming the record
// and file. The destination is written in full or not at all.
func (c *Client) Download(ctx context.Context, recordID string, file File, destination string) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
			c.logger.Debug("retrying download",
				"record", recordID,
				"file", file.Filename,
				"attempt", attempt,
				"backoff", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := c.downloadOnce(ctx, file, destination)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			break
		}
	}

	os.Remove(destination)
	return &dataset.TransferError{Dataset: recordID, Filename: file.Filename, Err: lastErr}
}

// downloadOnce performs a single download attempt. The file is
// streamed through the MD5 hash to a temporary name and renamed into
// place only after the checksum matches.
func (c *Client) downloadOnce(ctx context.Context, file File, destination string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", file.URL, err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return &statusError{code: response.StatusCode, url: file.URL}
	}

	// Staging beside the destination keeps the final rename on one
	// filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(destination), ".download-*")
	if err != nil {
		return fmt.Errorf("creating staging file: %w", err)
	}
	defer os.Remove(tmp.Name())

	hash := md5.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hash), response.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("streaming %s: %w", file.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing staging file: %w", err)
	}

	if file.MD5 != "" {
		digest := hex.EncodeToString(hash.Sum(nil))
		if digest != file.MD5 {
			return &checksumError{filename: file.Filename, got: digest, want: file.MD5}
		}
	}

	if err := os.Rename(tmp.Name(), destination); err != nil {
		return fmt.Errorf("committing %s: %w", destination, err)
	}
	return nil
}

// get performs a rate-limited GET with retry, returning the body.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		data, err := c.getOnce(ctx, target)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("retries exhausted: %w", lastErr)
}

func (c *Client) getOnce(ctx context.Context, target string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", target, err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, &statusError{code: response.StatusCode, url: target}
	}

	return io.ReadAll(response.Body)
}

// statusError is a non-2xx HTTP response.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.url, e.code)
}

// checksumError is an MD5 mismatch on downloaded content. Retried
// like a network fault: truncated transfers through proxies are the
// common cause.
type checksumError struct {
	filename string
	got      string
	want     string
}

func (e *checksumError) Error() string {
	return fmt.Sprintf("%s: MD5 mismatch: got %s, want %s", e.filename, e.got, e.want)
}

// isRetryable reports whether an error is worth another attempt:
// network faults, timeouts, rate limiting, server errors, and
// checksum mismatches.
func isRetryable(err error) bool {
	var status *statusError
	if errors.As(err, &status) {
		return status.code == http.StatusTooManyRequests || status.code >= 500
	}

	var checksum *checksumError
	if errors.As(err, &checksum) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
