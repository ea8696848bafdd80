// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// URLsManifestFilename is the conventional name of the per-record
// manifest file listing the original source URL for every file. When
// a record carries one, the URLs it lists take precedence over the
// record's own file links, preserving provenance when datasets are
// mirrored onto Zenodo.
const URLsManifestFilename = "urls.txt"

// File is one downloadable file within a record.
type File struct {
	// Filename is the file's name within the record, without any
	// directory component.
	Filename string

	// URL is the download location.
	URL string

	// Size is the expected size in bytes, zero when the remote
	// manifest does not supply one.
	Size int64

	// MD5 is the expected checksum as a lowercase hex string, empty
	// when the remote manifest does not supply one.
	MD5 string
}

// Record is a remote archive unit: the metadata and file list of one
// Zenodo record. Immutable once fetched.
type Record struct {
	ID              string
	Title           string
	Version         string
	DOI             string
	PublicationDate string
	License         string
	URL             string
	Description     string
	Files           []File
}

// ManifestFile returns the record's urls.txt file and whether the
// record carries one.
func (r *Record) ManifestFile() (File, bool) {
	for _, file := range r.Files {
		if file.Filename == URLsManifestFilename {
			return file, true
		}
	}
	return File{}, false
}

// DataFiles returns the record's files excluding the urls.txt
// manifest itself, sorted by filename.
func (r *Record) DataFiles() []File {
	files := make([]File, 0, len(r.Files))
	for _, file := range r.Files {
		if file.Filename == URLsManifestFilename {
			continue
		}
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Filename < files[j].Filename
	})
	return files
}

// recordPayload mirrors the subset of the Zenodo record JSON the
// client consumes.
type recordPayload struct {
	ID       json.Number `json:"id"`
	Metadata struct {
		Title           string `json:"title"`
		Version         string `json:"version"`
		DOI             string `json:"doi"`
		PublicationDate string `json:"publication_date"`
		Description     string `json:"description"`
		License         struct {
			ID string `json:"id"`
		} `json:"license"`
	} `json:"metadata"`
	Links struct {
		SelfHTML string `json:"self_html"`
	} `json:"links"`
	Files []struct {
		Filename string `json:"filename"`
		Key      string `json:"key"`
		Size     int64  `json:"size"`
		Checksum string `json:"checksum"`
		Links    struct {
			Self     string `json:"self"`
			Download string `json:"download"`
		} `json:"links"`
	} `json:"files"`
}

// ParseRecord decodes Zenodo record JSON into a Record.
func ParseRecord(data []byte) (*Record, error) {
	var payload recordPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing record JSON: %w", err)
	}
	return payload.toRecord()
}

func (p *recordPayload) toRecord() (*Record, error) {
	if p.ID.String() == "" {
		return nil, fmt.Errorf("record JSON has no id")
	}

	r := &Record{
		ID:              p.ID.String(),
		Title:           p.Metadata.Title,
		Version:         p.Metadata.Version,
		DOI:             p.Metadata.DOI,
		PublicationDate: p.Metadata.PublicationDate,
		License:         p.Metadata.License.ID,
		URL:             p.Links.SelfHTML,
		Description:     p.Metadata.Description,
	}

	for _, file := range p.Files {
		// Legacy records name files via "filename", current API
		// records via "key".
		name := file.Filename
		if name == "" {
			name = file.Key
		}
		if name == "" {
			return nil, fmt.Errorf("record %s: file entry with no name", r.ID)
		}

		// Filenames from the remote manifest are joined into
		// staging and cache paths verbatim downstream. An absolute
		// or parent-escaping name must never reach the filesystem.
		cleaned := filepath.Clean(filepath.FromSlash(name))
		if filepath.IsAbs(cleaned) || !filepath.IsLocal(cleaned) {
			return nil, &dataset.IntegrityError{
				Dataset: r.ID,
				Path:    name,
				Reason:  "file name escapes the dataset directory",
			}
		}

		// The API does not quote filenames in links; escape spaces so
		// the URL is fetchable as-is.
		downloadURL := file.Links.Download
		if downloadURL == "" {
			downloadURL = strings.ReplaceAll(file.Links.Self, " ", "%20")
		}

		r.Files = append(r.Files, File{
			Filename: name,
			URL:      downloadURL,
			Size:     file.Size,
			MD5:      strings.TrimPrefix(file.Checksum, "md5:"),
		})
	}

	sort.Slice(r.Files, func(i, j int) bool {
		return r.Files[i].Filename < r.Files[j].Filename
	})

	return r, nil
}

// communityPayload mirrors the Zenodo community record listing.
type communityPayload struct {
	Hits struct {
		Hits []json.RawMessage `json:"hits"`
	} `json:"hits"`
}

// ParseCommunity decodes a Zenodo community record listing into the
// records it contains.
func ParseCommunity(data []byte) ([]*Record, error) {
	var payload communityPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing community JSON: %w", err)
	}

	records := make([]*Record, 0, len(payload.Hits.Hits))
	for _, hit := range payload.Hits.Hits {
		r, err := ParseRecord(hit)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// ParseURLsManifest parses a urls.txt manifest: one line per file,
// filename and source URL separated by a tab. A line holding only an
// absolute URL names its file by the URL's final path element. Blank
// lines and lines starting with '#' are ignored.
func ParseURLsManifest(r io.Reader) (map[string]string, error) {
	urls := make(map[string]string)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		filename, source, ok := strings.Cut(text, "\t")
		if !ok {
			// A line with no filename column is a bare URL naming
			// its file by the final path element.
			name, err := FilenameFromURL(text)
			if err != nil {
				return nil, fmt.Errorf("urls manifest line %d: %w", line, err)
			}
			filename, source = name, text
		}
		urls[strings.TrimSpace(filename)] = strings.TrimSpace(source)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading urls manifest: %w", err)
	}
	return urls, nil
}

// FormatURLsManifest renders a urls.txt manifest with entries sorted
// by filename, the inverse of [ParseURLsManifest].
func FormatURLsManifest(urls map[string]string) []byte {
	filenames := make([]string, 0, len(urls))
	for filename := range urls {
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)

	var builder strings.Builder
	for _, filename := range filenames {
		builder.WriteString(filename)
		builder.WriteByte('\t')
		builder.WriteString(urls[filename])
		builder.WriteByte('\n')
	}
	return []byte(builder.String())
}

// FilenameFromURL extracts the final path element of a download URL,
// decoding percent escapes. The URL must be absolute.
func FilenameFromURL(source string) (string, error) {
	parsed, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parsing source URL %q: %w", source, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("source URL %q is not absolute", source)
	}
	segments := strings.Split(strings.TrimSuffix(parsed.Path, "/"), "/")
	name := segments[len(segments)-1]
	if name == "" {
		return "", fmt.Errorf("source URL %q has no filename", source)
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", fmt.Errorf("decoding filename %q: %w", name, err)
	}
	return decoded, nil
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainDescription returns the record description with HTML tags
// stripped and whitespace collapsed. Zenodo stores descriptions as
// HTML fragments; terminal output wants plain text.
func (r *Record) PlainDescription() string {
	text := strings.ReplaceAll(r.Description, "&nbsp;", " ")
	text = htmlTagPattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	return strings.Join(strings.Fields(text), " ")
}
