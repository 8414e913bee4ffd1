package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/linux-china/wukong/pkg/errors"
	wkhttp "github.com/linux-china/wukong/pkg/http"
	"github.com/linux-china/wukong/pkg/platform"
)

// Disco API defaults.
const (
	DefaultDiscoURL = "https://api.foojay.io"
	DefaultDistro   = "temurin"
)

// DiscoResolver resolves JDK downloads through the Foojay Disco "directuris" endpoint.
type DiscoResolver struct {
	BaseURL   string
	Distro    string
	client    *http.Client
	userAgent string
}

// NewDiscoResolver creates a Disco resolver. Empty baseURL and distro fall back to the defaults.
func NewDiscoResolver(baseURL, distro string, opts wkhttp.Options) *DiscoResolver {
	if baseURL == "" {
		baseURL = DefaultDiscoURL
	}
	if distro == "" {
		distro = DefaultDistro
	}
	return &DiscoResolver{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Distro:    distro,
		client:    wkhttp.NewRedirectClient(opts),
		userAgent: opts.UA(),
	}
}

// QueryURL builds the directuris URL for req without sending it.
func (r *DiscoResolver) QueryURL(req Request) (string, error) {
	params, err := platform.DiscoParams(req.Platform)
	if err != nil {
		return "", err
	}
	query := params.Query()
	query.Set("javafx_bundled", "false")
	query.Set("package_type", "jdk")
	query.Set("latest", "available")
	query.Set("version", req.Version)
	query.Set("distro", r.Distro)
	return r.BaseURL + "/disco/v3.0/directuris?" + query.Encode(), nil
}

// Resolve implements Resolver. Only the java candidate is served by Disco.
func (r *DiscoResolver) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	if req.Candidate != "java" {
		return nil, fmt.Errorf("disco only serves java, not %q: %w", req.Candidate, errors.ErrResolution)
	}
	if strings.TrimSpace(req.Version) == "" {
		return nil, fmt.Errorf("empty version: %w", errors.ErrResolution)
	}
	queryURL, err := r.QueryURL(req)
	if err != nil {
		return nil, err
	}
	return resolveRedirect(ctx, r.client, queryURL, r.userAgent)
}

// PackagesURL builds the Disco "packages" listing URL for the given platform.
func (r *DiscoResolver) PackagesURL(p platform.Platform) (string, error) {
	params, err := platform.DiscoParams(p)
	if err != nil {
		return "", err
	}
	query := params.Query()
	query.Set("release_status", "ga")
	query.Set("package_type", "jdk")
	query.Set("latest", "available")
	query.Set("distro", r.Distro)
	return r.BaseURL + "/disco/v3.0/packages?" + url.Values(query).Encode(), nil
}
