//go:generate mockgen -destination=./mocks/download.go . Fetcher
package download

import "context"

// Fetcher downloads a remote archive to a local staging path.
type Fetcher interface {
	// Fetch streams rawURL into stagingPath and returns the number of bytes written.
	// A file already present at stagingPath is removed first, so a previous
	// partial download is never reused. Redirects are followed.
	Fetch(ctx context.Context, rawURL, stagingPath string) (int64, error)
}
