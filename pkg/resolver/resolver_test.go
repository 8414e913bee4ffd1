package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/linux-china/wukong/pkg/errors"
	wkhttp "github.com/linux-china/wukong/pkg/http"
	"github.com/linux-china/wukong/pkg/platform"
)

var linuxX64 = platform.Platform{OS: platform.OSLinux, Arch: platform.ArchAMD64}

func TestDiscoResolver_Resolve(t *testing.T) {
	var query url.Values
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()
		w.Header().Set("Location", "https://cdn.example.com/temurin/OpenJDK21U-jdk_x64_linux_hotspot_21.0.2_13.tar.gz?token=abc")
		w.WriteHeader(http.StatusFound)
		_, _ = w.Write([]byte("this body must never be read as an archive"))
	}))
	defer server.Close()

	r := NewDiscoResolver(server.URL, "", wkhttp.Options{Timeout: time.Second})
	res, err := r.Resolve(context.Background(), Request{Candidate: "java", Version: "21", Platform: linuxX64})
	require.NoError(t, err)

	assert.Equal(t, "/disco/v3.0/directuris", path)
	assert.Equal(t, "21", query.Get("version"))
	assert.Equal(t, "temurin", query.Get("distro"))
	assert.Equal(t, "false", query.Get("javafx_bundled"))
	assert.Equal(t, "jdk", query.Get("package_type"))
	assert.Equal(t, "available", query.Get("latest"))
	assert.Equal(t, "x64", query.Get("architecture"))
	assert.Equal(t, "linux", query.Get("operating_system"))
	assert.Equal(t, "glibc", query.Get("libc_type"))
	assert.Equal(t, "tar.gz", query.Get("archive_type"))

	assert.Equal(t, "OpenJDK21U-jdk_x64_linux_hotspot_21.0.2_13.tar.gz", res.Filename)
	assert.Contains(t, res.URL, "https://cdn.example.com/temurin/")
}

func TestDiscoResolver_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name:    "non java candidate",
			req:     Request{Candidate: "maven", Version: "3.9.6", Platform: linuxX64},
			wantErr: pkgerrors.ErrResolution,
		},
		{
			name:    "unsupported platform",
			req:     Request{Candidate: "java", Version: "21", Platform: platform.Platform{OS: "freebsd", Arch: "amd64"}},
			wantErr: pkgerrors.ErrUnsupportedPlatform,
		},
		{
			name: "not a redirect",
			req:  Request{Candidate: "java", Version: "21", Platform: linuxX64},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantErr: pkgerrors.ErrResolution,
		},
		{
			name: "redirect without location",
			req:  Request{Candidate: "java", Version: "21", Platform: linuxX64},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusFound)
			},
			wantErr: pkgerrors.ErrResolution,
		},
		{
			name: "location without file name",
			req:  Request{Candidate: "java", Version: "21", Platform: linuxX64},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Location", "https://cdn.example.com/")
				w.WriteHeader(http.StatusFound)
			},
			wantErr: pkgerrors.ErrResolution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				if tt.handler != nil {
					tt.handler(w, r)
				}
			}))
			defer server.Close()

			r := NewDiscoResolver(server.URL, "temurin", wkhttp.Options{})
			_, err := r.Resolve(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.handler == nil {
				assert.False(t, called, "no request expected before validation passes")
			}
		})
	}
}

func TestBrokerResolver_Resolve(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Location", "/files/apache-maven-3.9.6-bin.zip")
		w.WriteHeader(http.StatusTemporaryRedirect)
	}))
	defer server.Close()

	r := NewBrokerResolver(server.URL+"/2", wkhttp.Options{})
	res, err := r.Resolve(context.Background(), Request{Candidate: "maven", Version: "3.9.6", Platform: linuxX64})
	require.NoError(t, err)

	assert.Equal(t, "/2/broker/download/maven/3.9.6/linuxx64", path)
	assert.Equal(t, server.URL+"/files/apache-maven-3.9.6-bin.zip", res.URL)
	assert.Equal(t, "apache-maven-3.9.6-bin.zip", res.Filename)
}

func TestBrokerResolver_Unsupported(t *testing.T) {
	r := NewBrokerResolver("http://127.0.0.1:1", wkhttp.Options{})
	_, err := r.Resolve(context.Background(), Request{Candidate: "java", Version: "21", Platform: platform.Platform{OS: "linux", Arch: "riscv64"}})
	assert.ErrorIs(t, err, pkgerrors.ErrUnsupportedPlatform)
}

func TestBrokerResolver_TransportFailure(t *testing.T) {
	r := NewBrokerResolver("http://127.0.0.1:1", wkhttp.Options{Timeout: time.Second})
	_, err := r.Resolve(context.Background(), Request{Candidate: "java", Version: "21", Platform: linuxX64})
	assert.ErrorIs(t, err, pkgerrors.ErrResolution)
}

func TestBrokerResolver_Listings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2/candidates/list", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Available Candidates\njava maven"))
	})
	mux.HandleFunc("/2/candidates/java/linuxx64/versions/list", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("installed=" + r.URL.Query().Get("installed")))
	})
	mux.HandleFunc("/2/candidates/default/java", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("21.0.2-tem\n"))
	})
	mux.HandleFunc("/2/candidates/default/nothing", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("  "))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	r := NewBrokerResolver(server.URL+"/2/", wkhttp.Options{})
	ctx := context.Background()

	text, err := r.ListCandidates(ctx)
	require.NoError(t, err)
	assert.Contains(t, text, "Available Candidates")

	text, err = r.ListVersions(ctx, "java", linuxX64, []string{"17.0.9-tem", "21.0.2-tem"})
	require.NoError(t, err)
	assert.Equal(t, "installed=17.0.9-tem,21.0.2-tem", text)

	version, err := r.DefaultVersion(ctx, "java")
	require.NoError(t, err)
	assert.Equal(t, "21.0.2-tem", version)

	_, err = r.DefaultVersion(ctx, "nothing")
	assert.ErrorIs(t, err, pkgerrors.ErrResolution)

	_, err = r.DefaultVersion(ctx, "missing")
	assert.ErrorIs(t, err, pkgerrors.ErrResolution)
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "https://x.org/a/b/jdk-21.zip", want: "jdk-21.zip"},
		{in: "https://x.org/a/jdk%2B21.tar.gz?x=1#frag", want: "jdk+21.tar.gz"},
		{in: "https://x.org/", wantErr: true},
		{in: "https://x.org", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := FilenameFromURL(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, pkgerrors.ErrResolution)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
