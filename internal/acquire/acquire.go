// Copyright Younes Elhjouji, 2026. All rights reserved.

// Package acquire downloads Shamela book exports and records their
// provenance.
package acquire

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/YounesElhjouji/language-period-analysis/internal/httputil"
	"github.com/YounesElhjouji/language-period-analysis/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// Record describes one downloaded book file and where it came from.
type Record struct {
	SourceURL string    `json:"source_url" yaml:"source_url"`
	File      string    `json:"file" yaml:"file"`
	Size      int64     `json:"size" yaml:"size"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// BatchResult holds the outcome of a batch acquisition run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Records    []*Record
}

// Total returns the total number of URLs processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FileName derives the on-disk name for a book URL: the last path
// segment, with .bok added when the URL carries no extension.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("URL %q has no file name", rawURL)
	}
	if path.Ext(name) == "" {
		name += ".bok"
	}
	return name, nil
}

// AcquireURL downloads a single book file into DataDir/raw and writes a
// YAML provenance sidecar into DataDir/metadata. If the file already
// exists on disk the download is skipped and the existing sidecar is
// returned. The skipped return value indicates whether the download was
// skipped.
func AcquireURL(ctx context.Context, client *http.Client, rawURL string, cfg types.AcquireConfig, w io.Writer) (rec *Record, skipped bool, err error) {
	name, err := FileName(rawURL)
	if err != nil {
		return nil, false, err
	}

	destPath := filepath.Join(cfg.DataDir, rawDir, name)
	base := strings.TrimSuffix(name, path.Ext(name))
	metaPath := filepath.Join(cfg.DataDir, metadataDir, base+".yaml")

	if _, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
		r, readErr := readRecord(metaPath)
		if readErr != nil {
			r = &Record{SourceURL: rawURL, File: destPath}
		}
		return r, true, nil
	}

	for _, dir := range []string{
		filepath.Join(cfg.DataDir, rawDir),
		filepath.Join(cfg.DataDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fmt.Fprintf(w, "downloading: %s\n", name)

	size, err := downloadFile(ctx, client, rawURL, destPath, cfg)
	if err != nil {
		return nil, false, fmt.Errorf("downloading %s: %w", name, err)
	}

	r := &Record{
		SourceURL: rawURL,
		File:      destPath,
		Size:      size,
		FetchedAt: time.Now().UTC(),
	}
	if err := writeRecord(r, metaPath); err != nil {
		return nil, false, fmt.Errorf("writing sidecar for %s: %w", name, err)
	}
	return r, false, nil
}

// AcquireBatch processes multiple URLs, printing per-item status and
// returning a summary. It continues after individual failures and
// applies a delay between consecutive downloads.
func AcquireBatch(ctx context.Context, client *http.Client, urls []string, cfg types.AcquireConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, u := range urls {
		if i > 0 && cfg.DownloadDelay > 0 {
			select {
			case <-ctx.Done():
				fmt.Fprintf(w, "failed:  %s (%v)\n", u, ctx.Err())
				result.Failed++
				continue
			case <-time.After(cfg.DownloadDelay):
			}
		}
		rec, wasSkipped, err := AcquireURL(ctx, client, u, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", u, err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Downloaded++
		}
		result.Records = append(result.Records, rec)
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// ParseManifest reads book URLs from r, one per line. Blank lines and
// lines starting with # are ignored.
func ParseManifest(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return urls, nil
}

// downloadFile fetches url to destPath using a temporary file, renaming
// on success so partial downloads never land under the final name. Rate
// limited responses are retried with backoff.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.AcquireConfig) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	size, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return size, nil
}

func writeRecord(rec *Record, path string) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling sidecar: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func readRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
