//go:generate mockgen -destination=./mocks/resolver.go . Resolver

// Package resolver turns a requested candidate version into a concrete archive
// download URL by asking an SDK distribution service. Both supported providers
// answer with an HTTP redirect whose Location header holds the binary URL; the
// redirect is inspected, never followed.
package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/platform"
)

// Request identifies what to resolve.
type Request struct {
	Candidate string
	Version   string
	Platform  platform.Platform
}

// Resolution is the final archive location.
type Resolution struct {
	URL      string
	Filename string
}

// Resolver resolves a Request into a Resolution.
type Resolver interface {
	Resolve(ctx context.Context, req Request) (*Resolution, error)
}

// resolveRedirect sends GET rawURL with client (which must not follow redirects)
// and returns the Location target.
func resolveRedirect(ctx context.Context, client *http.Client, rawURL, userAgent string) (*Resolution, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("invalid provider url %s: %v: %w", rawURL, err, errors.ErrResolution)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %v: %w", err, errors.ErrResolution)
	}
	// the redirect body is never read
	_ = resp.Body.Close()

	if !isRedirect(resp.StatusCode) {
		return nil, fmt.Errorf("provider returned status %d for %s: %w", resp.StatusCode, rawURL, errors.ErrResolution)
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return nil, fmt.Errorf("provider redirect for %s has no Location header: %w", rawURL, errors.ErrResolution)
	}

	target, err := req.URL.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid Location %q: %v: %w", location, err, errors.ErrResolution)
	}
	filename, err := FilenameFromURL(target.String())
	if err != nil {
		return nil, err
	}
	return &Resolution{URL: target.String(), Filename: filename}, nil
}

func isRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// FilenameFromURL returns the last path segment of rawURL, ignoring any query.
func FilenameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %v: %w", rawURL, err, errors.ErrResolution)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" || strings.HasSuffix(u.Path, "/") {
		return "", fmt.Errorf("no file name in url %q: %w", rawURL, errors.ErrResolution)
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name, nil
}
