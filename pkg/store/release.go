package store

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/magiconair/properties"
)

// Release holds the fields of a JDK "release" file that identify the JDK.
type Release struct {
	JavaVersion    string
	RuntimeVersion string
	Implementor    string
	Major          int
}

// FullVersion returns the runtime version, falling back to the java version.
func (r Release) FullVersion() string {
	if r.RuntimeVersion != "" {
		return r.RuntimeVersion
	}
	return r.JavaVersion
}

// ReadRelease parses <home>/release.
func ReadRelease(home string) (*Release, error) {
	p, err := properties.LoadFile(filepath.Join(home, "release"), properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("failed to read release file of %s: %v: %w", home, err, errors.ErrInvalidPath)
	}
	r := &Release{
		JavaVersion:    unquote(p.GetString("JAVA_VERSION", "")),
		RuntimeVersion: unquote(p.GetString("JAVA_RUNTIME_VERSION", "")),
		Implementor:    unquote(p.GetString("IMPLEMENTOR", "")),
	}
	if r.JavaVersion == "" {
		return nil, fmt.Errorf("release file of %s has no JAVA_VERSION: %w", home, errors.ErrInvalidPath)
	}
	r.Major = MajorVersion(r.JavaVersion)
	return r, nil
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// MajorVersion returns the feature release number of a java version string:
// 8 for "1.8.0_392", 21 for "21.0.2" or "21-ea". Unparseable input yields 0.
func MajorVersion(javaVersion string) int {
	v := strings.TrimPrefix(strings.TrimSpace(javaVersion), "1.")
	end := strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		v = v[:end]
	}
	major, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return major
}

// JDK describes an installed JDK found in a JBang store.
type JDK struct {
	ID      string `json:"id"`
	Major   int    `json:"major"`
	Version string `json:"version"`
	Home    string `json:"home"`
	Current bool   `json:"current"`
}

// FindJDKs lists the JDKs of s that carry a readable release file.
func FindJDKs(s *Store) ([]JDK, error) {
	versions, err := s.Versions("java")
	if err != nil {
		return nil, err
	}
	current, _, _ := s.Current("java")

	var jdks []JDK
	for _, v := range versions {
		home := s.Home(Candidate{Name: "java", Version: v})
		rel, err := ReadRelease(home)
		if err != nil {
			continue
		}
		major := rel.Major
		if major == 0 {
			major = MajorVersion(v)
		}
		jdks = append(jdks, JDK{
			ID:      fmt.Sprintf("%d-jbang", major),
			Major:   major,
			Version: rel.FullVersion(),
			Home:    home,
			Current: v == current,
		})
	}
	return jdks, nil
}
