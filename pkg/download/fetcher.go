// Package download fetches SDK archives over HTTP into a staging directory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
	wkhttp "github.com/linux-china/wukong/pkg/http"
)

// HTTPFetcher is the Fetcher backed by a retrying HTTP client.
type HTTPFetcher struct {
	client    *retryablehttp.Client
	userAgent string
}

// NewFetcher creates an HTTPFetcher from the given client options.
func NewFetcher(opts wkhttp.Options) *HTTPFetcher {
	return &HTTPFetcher{
		client:    wkhttp.NewRetryClient(opts),
		userAgent: opts.UA(),
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL, stagingPath string) (int64, error) {
	if stagingPath == "" || !filepath.IsAbs(stagingPath) {
		return 0, fmt.Errorf("staging path must be absolute: %q: %w", stagingPath, errors.ErrInvalidPath)
	}
	if err := os.Remove(stagingPath); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("could not remove stale download %s: %v: %w", stagingPath, err, errors.ErrDownload)
	}

	resp, err := f.doRequest(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	tmpPath, size, err := writeBodyToTemp(resp.Body, stagingPath)
	if err != nil {
		return 0, err
	}
	if err := finalizeFile(tmpPath, stagingPath); err != nil {
		_ = os.Remove(tmpPath)
		return 0, err
	}

	logger.Debug("Downloaded archive", logger.Fields{
		"url":  rawURL,
		"path": stagingPath,
		"size": humanize.Bytes(uint64(size)),
	})
	return size, nil
}

func (f *HTTPFetcher) doRequest(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %v: %w", rawURL, err, errors.ErrDownload)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %v: %w", rawURL, err, errors.ErrDownload)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d from %s: %w", resp.StatusCode, rawURL, errors.ErrDownload)
	}
	return resp, nil
}

func writeBodyToTemp(body io.Reader, absPath string) (string, int64, error) {
	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return "", 0, fmt.Errorf("could not create staging dir: %v: %w", err, errors.ErrDownload)
	}
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", 0, fmt.Errorf("could not create temp file: %v: %w", err, errors.ErrDownload)
	}
	tmpPath := tmp.Name()

	size, err := io.Copy(tmp, body)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("could not write %s: %v: %w", absPath, err, errors.ErrDownload)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("could not sync file: %v: %w", err, errors.ErrDownload)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("could not close file: %v: %w", err, errors.ErrDownload)
	}
	return tmpPath, size, nil
}

func finalizeFile(tmpPath, absPath string) error {
	if err := os.Rename(tmpPath, absPath); err != nil {
		return fmt.Errorf("could not finalize file: %v: %w", err, errors.ErrDownload)
	}
	if err := os.Chmod(absPath, fsutil.FileModeSecure); err != nil {
		return fmt.Errorf("could not set permissions: %v: %w", err, errors.ErrDownload)
	}
	return nil
}
