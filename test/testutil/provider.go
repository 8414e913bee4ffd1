// Package testutil provides fixtures shared by integration tests: fake JDK
// trees and a local HTTP server standing in for the Disco and broker services.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linux-china/wukong/pkg/archive"
)

// FakeJDK writes a minimal JDK home into dir: an executable bin/java and a
// release file declaring javaVersion.
func FakeJDK(t *testing.T, dir, javaVersion string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin", "java"), []byte("#!/bin/sh\necho "+javaVersion+"\n"), 0o755))
	release := fmt.Sprintf("IMPLEMENTOR=\"Eclipse Adoptium\"\nJAVA_VERSION=\"%s\"\n", javaVersion)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "release"), []byte(release), 0o644))
	return dir
}

// Provider serves JDK archives the way the Disco API and the SDKMAN broker
// do: a query endpoint answers with a redirect to the archive file.
type Provider struct {
	Server *httptest.Server
	URL    string

	mu       sync.Mutex
	archives map[string]string // version -> archive path
	defaults map[string]string // candidate -> recommended version
	hits     int
}

// NewProvider starts a Provider that is closed when the test ends.
func NewProvider(t *testing.T) *Provider {
	t.Helper()
	p := &Provider{archives: map[string]string{}, defaults: map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/disco/v3.0/directuris", func(w http.ResponseWriter, r *http.Request) {
		p.redirect(w, r, r.URL.Query().Get("version"))
	})
	mux.HandleFunc("/2/broker/download/", func(w http.ResponseWriter, r *http.Request) {
		// /2/broker/download/<candidate>/<version>/<platform>
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/2/broker/download/"), "/")
		if len(parts) < 2 {
			http.NotFound(w, r)
			return
		}
		p.redirect(w, r, parts[1])
	})
	mux.HandleFunc("/2/candidates/default/", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		version, ok := p.defaults[strings.TrimPrefix(r.URL.Path, "/2/candidates/default/")]
		p.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, version)
	})
	mux.HandleFunc("/2/candidates/list", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, "Available Candidates\n  java\n  maven\n")
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.hits++
		path := ""
		for _, a := range p.archives {
			if filepath.Base(a) == filepath.Base(r.URL.Path) {
				path = a
			}
		}
		p.mu.Unlock()
		if path == "" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	})

	p.Server = httptest.NewServer(mux)
	p.URL = p.Server.URL
	t.Cleanup(p.Server.Close)
	return p
}

func (p *Provider) redirect(w http.ResponseWriter, r *http.Request, version string) {
	p.mu.Lock()
	path, ok := p.archives[version]
	p.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/files/"+filepath.Base(path), http.StatusFound)
}

// AddJDK builds a tar.gz holding a fake JDK wrapped in rootName and serves it
// for version.
func (p *Provider) AddJDK(t *testing.T, version, rootName string) string {
	t.Helper()
	dir := t.TempDir()
	src := FakeJDK(t, filepath.Join(dir, "src"), version)
	path := filepath.Join(dir, fmt.Sprintf("OpenJDK-%s_x64_linux.tar.gz", version))
	require.NoError(t, archive.NewManager().Create(context.Background(), src, path, rootName))

	p.mu.Lock()
	p.archives[version] = path
	p.mu.Unlock()
	return path
}

// SetDefault makes version the recommended version of candidate.
func (p *Provider) SetDefault(candidate, version string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.defaults[candidate] = version
}

// Downloads returns how many archive files were served.
func (p *Provider) Downloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits
}
