// Package http builds the HTTP clients used to talk to SDK distribution services.
// TLS verification and retry behaviour are explicit options rather than
// process-wide environment state.
package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/linux-china/wukong/pkg/errors"
)

// DefaultUserAgent is sent when Options.UserAgent is empty.
const DefaultUserAgent = "wukong/1.0"

// ResponseHeaderTimeout bounds the wait for response headers. The body read
// is only bounded by Options.Timeout.
const ResponseHeaderTimeout = time.Minute

// Options configure the clients built by this package.
type Options struct {
	// Timeout bounds a whole request including reading the body. Zero means no timeout.
	Timeout time.Duration
	// RetryMax is the number of retries for retryable failures. Zero disables retries.
	RetryMax int
	// InsecureSkipVerify disables TLS certificate validation.
	InsecureSkipVerify bool
	UserAgent          string
}

// UA returns the configured user agent or DefaultUserAgent.
func (o Options) UA() string {
	if o.UserAgent == "" {
		return DefaultUserAgent
	}
	return o.UserAgent
}

func newTransport(opts Options) *http.Transport {
	transport := cleanhttp.DefaultPooledTransport()
	transport.ResponseHeaderTimeout = ResponseHeaderTimeout
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via ONEIO_ACCEPT_INVALID_CERTS
	}
	return transport
}

// NewRedirectClient returns a client that never follows redirects, so the
// caller can read the Location header without downloading the target.
func NewRedirectClient(opts Options) *http.Client {
	return &http.Client{
		Transport: newTransport(opts),
		Timeout:   opts.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// NewRetryClient returns a retrying client for body downloads.
func NewRetryClient(opts Options) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = opts.RetryMax
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient = &http.Client{
		Transport: newTransport(opts),
		Timeout:   opts.Timeout,
	}
	// surface the last response instead of retryablehttp's generic "giving up" error
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return client
}

// GetText performs a GET and returns the body of a 200 response as a string.
func GetText(ctx context.Context, client *retryablehttp.Client, rawURL, userAgent string) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "request to %s failed", rawURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d from %s", resp.StatusCode, rawURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response body")
	}
	return string(data), nil
}
