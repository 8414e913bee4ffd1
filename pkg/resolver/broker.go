package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/linux-china/wukong/pkg/errors"
	wkhttp "github.com/linux-china/wukong/pkg/http"
	"github.com/linux-china/wukong/pkg/platform"
)

// DefaultBrokerURL is the SDKMAN candidates API.
const DefaultBrokerURL = "https://api.sdkman.io/2"

// BrokerResolver resolves candidate downloads through the SDKMAN broker API.
type BrokerResolver struct {
	BaseURL   string
	client    *http.Client
	text      *retryablehttp.Client
	userAgent string
}

// NewBrokerResolver creates a broker resolver. An empty baseURL falls back to DefaultBrokerURL.
func NewBrokerResolver(baseURL string, opts wkhttp.Options) *BrokerResolver {
	if baseURL == "" {
		baseURL = DefaultBrokerURL
	}
	return &BrokerResolver{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		client:    wkhttp.NewRedirectClient(opts),
		text:      wkhttp.NewRetryClient(opts),
		userAgent: opts.UA(),
	}
}

// DownloadURL builds the broker download URL for req without sending it.
func (r *BrokerResolver) DownloadURL(req Request) (string, error) {
	token, err := platform.BrokerToken(req.Platform)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/broker/download/%s/%s/%s",
		r.BaseURL, url.PathEscape(req.Candidate), url.PathEscape(req.Version), token), nil
}

// Resolve implements Resolver.
func (r *BrokerResolver) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	if strings.TrimSpace(req.Candidate) == "" || strings.TrimSpace(req.Version) == "" {
		return nil, fmt.Errorf("candidate and version are required: %w", errors.ErrResolution)
	}
	downloadURL, err := r.DownloadURL(req)
	if err != nil {
		return nil, err
	}
	return resolveRedirect(ctx, r.client, downloadURL, r.userAgent)
}

// ListCandidates returns the broker's plain-text candidate listing.
func (r *BrokerResolver) ListCandidates(ctx context.Context) (string, error) {
	return wkhttp.GetText(ctx, r.text, r.BaseURL+"/candidates/list", r.userAgent)
}

// ListVersions returns the broker's plain-text version listing for a candidate.
// installed is the comma separated list of locally installed versions, which
// the broker marks in its output.
func (r *BrokerResolver) ListVersions(ctx context.Context, candidate string, p platform.Platform, installed []string) (string, error) {
	token, err := platform.BrokerToken(p)
	if err != nil {
		return "", err
	}
	listURL := fmt.Sprintf("%s/candidates/%s/%s/versions/list?installed=%s",
		r.BaseURL, url.PathEscape(candidate), token, url.QueryEscape(strings.Join(installed, ",")))
	return wkhttp.GetText(ctx, r.text, listURL, r.userAgent)
}

// DefaultVersion returns the version the broker recommends for a candidate.
func (r *BrokerResolver) DefaultVersion(ctx context.Context, candidate string) (string, error) {
	text, err := wkhttp.GetText(ctx, r.text, fmt.Sprintf("%s/candidates/default/%s", r.BaseURL, url.PathEscape(candidate)), r.userAgent)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, errors.ErrResolution)
	}
	version := strings.TrimSpace(text)
	if version == "" {
		return "", fmt.Errorf("no default version for %s: %w", candidate, errors.ErrResolution)
	}
	return version, nil
}
