package archive

import (
	"fmt"
	"strings"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/platform"
)

// Format is the container format of an SDK archive.
type Format int

// Supported archive formats.
const (
	Zip Format = iota + 1
	TarGz
)

func (f Format) String() string {
	switch f {
	case Zip:
		return "zip"
	case TarGz:
		return "tar.gz"
	default:
		return "unknown"
	}
}

// FormatFromName derives the archive format from a file name extension.
func FormatFromName(name string) (Format, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return Zip, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return TarGz, nil
	}
	return 0, fmt.Errorf("unsupported archive %q: %w", name, errors.ErrExtraction)
}

// PolicyKind selects how entry paths are rewritten on extraction.
type PolicyKind int

// Root policy kinds.
const (
	KeepRoot PolicyKind = iota
	StripFirstSegment
	StripToSubPath
)

// RootPolicy rewrites archive entry paths so the SDK lands directly in the
// candidate home. Marker is only used by StripToSubPath.
type RootPolicy struct {
	Kind   PolicyKind
	Marker string
}

// Predefined policies.
var (
	Keep       = RootPolicy{Kind: KeepRoot}
	StripFirst = RootPolicy{Kind: StripFirstSegment}
)

// SubPath returns a StripToSubPath policy for marker, e.g. "Contents/Home/".
func SubPath(marker string) RootPolicy {
	return RootPolicy{Kind: StripToSubPath, Marker: marker}
}

// MacJavaHome is the bundle sub path holding the JDK inside a macOS archive.
const MacJavaHome = "Contents/Home/"

func (p RootPolicy) String() string {
	switch p.Kind {
	case KeepRoot:
		return "keep-root"
	case StripFirstSegment:
		return "strip-first-segment"
	case StripToSubPath:
		return "strip-to:" + p.Marker
	default:
		return "unknown"
	}
}

// Rewrite maps an archive entry name to its path relative to the destination.
// The second result is false when the entry must be skipped.
func (p RootPolicy) Rewrite(name string) (string, bool) {
	name = strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "./")
	name = strings.TrimLeft(name, "/")

	var rest string
	switch p.Kind {
	case KeepRoot:
		rest = name
	case StripFirstSegment:
		idx := strings.Index(name, "/")
		if idx < 0 {
			return "", false
		}
		rest = name[idx+1:]
	case StripToSubPath:
		idx := strings.Index(name, p.Marker)
		if p.Marker == "" || idx < 0 {
			return "", false
		}
		rest = name[idx+len(p.Marker):]
	default:
		return "", false
	}

	rest = strings.TrimSuffix(rest, "/")
	if rest == "" {
		return "", false
	}
	return rest, true
}

// PolicyFor returns the root policy for a candidate archive on p.
// Java on macOS ships as a bundle whose JDK lives under Contents/Home.
func PolicyFor(candidate string, p platform.Platform) RootPolicy {
	if candidate == "java" && p.IsMac() {
		return SubPath(MacJavaHome)
	}
	return StripFirst
}

// Descriptor is everything needed to fetch and unpack one SDK archive.
type Descriptor struct {
	URL    string
	Format Format
	Policy RootPolicy
	// Filename is the last segment of URL, used to name the staged download.
	Filename string
}

// NewDescriptor builds a Descriptor from a resolved URL and its file name.
func NewDescriptor(rawURL, filename, candidate string, p platform.Platform) (Descriptor, error) {
	format, err := FormatFromName(filename)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{URL: rawURL, Format: format, Policy: PolicyFor(candidate, p), Filename: filename}, nil
}
