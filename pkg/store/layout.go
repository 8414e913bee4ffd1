package store

import "path/filepath"

type layoutKind int

const (
	sdkmanLayout layoutKind = iota
	jbangLayout
)

// Layout maps candidates onto directories below a store root.
type Layout struct {
	root string
	kind layoutKind
}

// NewSDKMANLayout lays candidates out as <root>/candidates/<name>/<version>
// with a <root>/candidates/<name>/current link.
func NewSDKMANLayout(root string) Layout {
	return Layout{root: root, kind: sdkmanLayout}
}

// NewJBangLayout lays JDKs out as <root>/cache/jdks/<version> with a
// <root>/currentjdk link. Candidate names are ignored.
func NewJBangLayout(root string) Layout {
	return Layout{root: root, kind: jbangLayout}
}

// Root returns the store root.
func (l Layout) Root() string { return l.root }

// CandidatesDir returns the directory holding every candidate directory.
func (l Layout) CandidatesDir() string {
	if l.kind == jbangLayout {
		return filepath.Join(l.root, "cache", "jdks")
	}
	return filepath.Join(l.root, "candidates")
}

// CandidateDir returns the directory holding all versions of a candidate.
func (l Layout) CandidateDir(name string) string {
	if l.kind == jbangLayout {
		return l.CandidatesDir()
	}
	return filepath.Join(l.CandidatesDir(), name)
}

// Home returns the CandidateHome of name/version.
func (l Layout) Home(name, version string) string {
	return filepath.Join(l.CandidateDir(name), version)
}

// CurrentLink returns the path of the current-version link of a candidate.
func (l Layout) CurrentLink(name string) string {
	if l.kind == jbangLayout {
		return filepath.Join(l.root, "currentjdk")
	}
	return filepath.Join(l.CandidateDir(name), CurrentName)
}

// StagingDir returns the directory downloads are staged in.
func (l Layout) StagingDir() string {
	if l.kind == jbangLayout {
		return filepath.Join(l.root, "cache", "tmp")
	}
	return filepath.Join(l.root, "tmp")
}

// IsJBang reports whether l is a JBang layout.
func (l Layout) IsJBang() bool { return l.kind == jbangLayout }
