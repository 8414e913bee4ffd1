// Package store manages installed SDK candidates on disk: one directory per
// (candidate, version) plus a "current" link selecting the default version.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/archive"
	"github.com/linux-china/wukong/pkg/download"
	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
)

// CurrentName is the name of the current-version link inside a candidate directory.
const CurrentName = "current"

// partialMarker is part of the name of in-progress install directories.
const partialMarker = ".partial-"

// IsPartial reports whether name is an in-progress install directory.
func IsPartial(name string) bool {
	return strings.HasPrefix(name, ".") && strings.Contains(name, partialMarker)
}

// Candidate identifies one installable SDK version, e.g. {java, 21.0.2-tem}.
type Candidate struct {
	Name    string
	Version string
}

func (c Candidate) String() string {
	return c.Name + " " + c.Version
}

func (c Candidate) validate() error {
	for _, part := range []string{c.Name, c.Version} {
		if part == "" || part == "." || part == ".." || part == CurrentName ||
			strings.HasPrefix(part, ".") || strings.ContainsAny(part, `/\`) {
			return fmt.Errorf("invalid candidate %q %q: %w", c.Name, c.Version, errors.ErrInvalidPath)
		}
	}
	return nil
}

// LinkMode selects how InstallFromLocalPath places a local SDK into the store.
type LinkMode int

const (
	// Symlink links the CandidateHome to the source directory.
	Symlink LinkMode = iota
	// Copy copies the source tree into the CandidateHome.
	Copy
)

// InstallResult describes the outcome of an install.
type InstallResult struct {
	Home             string
	AlreadyInstalled bool
	// Size is the number of bytes downloaded, zero for local installs.
	Size int64
}

// Store is a candidate store rooted at a Layout.
type Store struct {
	layout    Layout
	fetcher   download.Fetcher
	extractor archive.Extractor
}

// New creates a Store. fetcher and extractor may be nil for stores that only
// read, switch or remove versions.
func New(layout Layout, fetcher download.Fetcher, extractor archive.Extractor) *Store {
	return &Store{layout: layout, fetcher: fetcher, extractor: extractor}
}

// Layout returns the store's layout.
func (s *Store) Layout() Layout { return s.layout }

// Root returns the store root directory.
func (s *Store) Root() string { return s.layout.Root() }

// CandidateDir returns the directory holding all versions of name.
func (s *Store) CandidateDir(name string) string { return s.layout.CandidateDir(name) }

// Home returns the CandidateHome of c, whether or not it is installed.
func (s *Store) Home(c Candidate) string { return s.layout.Home(c.Name, c.Version) }

// Exists reports whether the CandidateHome of c is a directory.
func (s *Store) Exists(c Candidate) bool {
	if c.validate() != nil {
		return false
	}
	return fsutil.IsDir(s.Home(c))
}

// StagingPath returns where the archive for c is downloaded to.
func (s *Store) StagingPath(c Candidate, filename string) string {
	return filepath.Join(s.layout.StagingDir(), fmt.Sprintf("%s-%s-%s", c.Name, c.Version, filename))
}

// Install downloads and unpacks desc as c. An existing candidate is reported
// as AlreadyInstalled without touching the network. The archive is extracted
// into a private directory and renamed into place, so a CandidateHome that
// exists is always complete.
func (s *Store) Install(ctx context.Context, c Candidate, desc archive.Descriptor) (*InstallResult, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	home := s.Home(c)
	if s.Exists(c) {
		return &InstallResult{Home: home, AlreadyInstalled: true}, nil
	}
	if s.fetcher == nil || s.extractor == nil {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, fmt.Errorf("store has no fetcher or extractor: %w", errors.ErrDownload))
	}

	filename := desc.Filename
	if filename == "" {
		filename = "archive." + desc.Format.String()
	}
	staged := s.StagingPath(c, filename)

	logger.Info("Downloading", logger.Fields{"candidate": c.Name, "version": c.Version, "url": desc.URL})
	size, err := s.fetcher.Fetch(ctx, desc.URL, staged)
	if err != nil {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, err)
	}

	candidateDir := s.layout.CandidateDir(c.Name)
	if err := fsutil.EnsureDir(candidateDir); err != nil {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, fmt.Errorf("%v: %w", err, errors.ErrExtraction))
	}
	partial, err := os.MkdirTemp(candidateDir, "."+c.Version+partialMarker+"*")
	if err != nil {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, fmt.Errorf("%v: %w", err, errors.ErrExtraction))
	}

	if err := s.extractor.Extract(ctx, staged, partial, desc); err != nil {
		_ = os.RemoveAll(partial)
		return nil, errors.NewCandidateError("install", c.Name, c.Version, err)
	}
	if err := os.Chmod(partial, fsutil.DirModeDefault); err != nil {
		_ = os.RemoveAll(partial)
		return nil, errors.NewCandidateError("install", c.Name, c.Version, fmt.Errorf("%v: %w", err, errors.ErrExtraction))
	}

	if info, err := os.Lstat(home); err == nil && info.Mode()&os.ModeSymlink != 0 {
		// dangling link of a local install whose source is gone
		_ = os.Remove(home)
	}
	if err := os.Rename(partial, home); err != nil {
		_ = os.RemoveAll(partial)
		if s.Exists(c) {
			return &InstallResult{Home: home, AlreadyInstalled: true}, nil
		}
		return nil, errors.NewCandidateError("install", c.Name, c.Version, fmt.Errorf("%v: %w", err, errors.ErrExtraction))
	}

	logger.Success("Installed", logger.Fields{"candidate": c.Name, "version": c.Version, "home": home})
	return &InstallResult{Home: home, Size: size}, nil
}

// InstallFromLocalPath registers an SDK already present on disk as c.
func (s *Store) InstallFromLocalPath(c Candidate, source string, mode LinkMode) (*InstallResult, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	absSource, err := filepath.Abs(fsutil.ExpandHome(source))
	if err != nil {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, fmt.Errorf("%s: %v: %w", source, err, errors.ErrInvalidPath))
	}
	if !fsutil.IsDir(absSource) {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, fmt.Errorf("%s is not a directory: %w", source, errors.ErrInvalidPath))
	}

	home := s.Home(c)
	if s.Exists(c) {
		return &InstallResult{Home: home, AlreadyInstalled: true}, nil
	}
	candidateDir := s.layout.CandidateDir(c.Name)
	if err := fsutil.EnsureDir(candidateDir); err != nil {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, err)
	}

	switch mode {
	case Copy:
		partial, err := os.MkdirTemp(candidateDir, "."+c.Version+partialMarker+"*")
		if err != nil {
			return nil, errors.NewCandidateError("install", c.Name, c.Version, err)
		}
		if err := fsutil.CopyTree(absSource, partial); err != nil {
			_ = os.RemoveAll(partial)
			return nil, errors.NewCandidateError("install", c.Name, c.Version, err)
		}
		if err := os.Rename(partial, home); err != nil {
			_ = os.RemoveAll(partial)
			return nil, errors.NewCandidateError("install", c.Name, c.Version, err)
		}
	default:
		// a dangling link left by a deleted source would block the new one
		_ = os.Remove(home)
		if err := os.Symlink(absSource, home); err != nil {
			return nil, errors.NewCandidateError("install", c.Name, c.Version, err)
		}
	}

	logger.Success("Installed local version", logger.Fields{"candidate": c.Name, "version": c.Version, "source": absSource})
	return &InstallResult{Home: home}, nil
}

// Uninstall removes c. If it is the current version the current link is
// removed first. For a linked local install only the link is removed.
func (s *Store) Uninstall(c Candidate) error {
	if err := c.validate(); err != nil {
		return err
	}
	home := s.Home(c)
	info, err := os.Lstat(home)
	if err != nil {
		return errors.NewCandidateError("uninstall", c.Name, c.Version, errors.ErrNotInstalled)
	}

	if current, ok, _ := s.Current(c.Name); ok && current == c.Version {
		if err := s.ClearCurrent(c.Name); err != nil {
			return errors.NewCandidateError("uninstall", c.Name, c.Version, err)
		}
	}

	if info.Mode()&os.ModeSymlink != 0 {
		err = os.Remove(home)
	} else {
		err = os.RemoveAll(home)
	}
	if err != nil {
		return errors.NewCandidateError("uninstall", c.Name, c.Version, err)
	}
	if !s.layout.IsJBang() {
		// drop the candidate dir with its last version so it is no longer listed
		if empty, err := fsutil.IsDirEmpty(s.layout.CandidateDir(c.Name)); err == nil && empty {
			_ = os.Remove(s.layout.CandidateDir(c.Name))
		}
	}
	logger.Success("Uninstalled", logger.Fields{"candidate": c.Name, "version": c.Version})
	return nil
}

// Candidates returns the names of candidates with at least one entry in the store.
func (s *Store) Candidates() ([]string, error) {
	if s.layout.IsJBang() {
		if versions, err := s.Versions("java"); err != nil || len(versions) == 0 {
			return nil, err
		}
		return []string{"java"}, nil
	}
	entries, err := os.ReadDir(s.layout.CandidatesDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read candidates")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Versions returns the installed versions of name in ascending order. The
// current link and in-progress installs are not versions.
func (s *Store) Versions(name string) ([]string, error) {
	dir := s.layout.CandidateDir(name)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}

	var versions []string
	for _, e := range entries {
		n := e.Name()
		if n == CurrentName || strings.HasPrefix(n, ".") {
			continue
		}
		if fsutil.IsDir(filepath.Join(dir, n)) {
			versions = append(versions, n)
		}
	}
	SortVersions(versions)
	return versions, nil
}

// SortVersions orders versions ascending. Versions go-version can parse come
// first in semantic order, the rest follow lexically.
func SortVersions(versions []string) {
	parsed := make(map[string]*version.Version, len(versions))
	for _, v := range versions {
		if pv, err := version.NewVersion(v); err == nil {
			parsed[v] = pv
		}
	}
	sort.SliceStable(versions, func(i, j int) bool {
		a, b := parsed[versions[i]], parsed[versions[j]]
		switch {
		case a != nil && b != nil:
			if c := a.Compare(b); c != 0 {
				return c < 0
			}
			return versions[i] < versions[j]
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return versions[i] < versions[j]
		}
	})
}

// FindVersion returns the highest installed version of name matching query.
// An exact match wins; otherwise query is treated as a version prefix, so
// "21" matches "21.0.2-tem" but not "210".
func (s *Store) FindVersion(name, query string) (string, bool, error) {
	versions, err := s.Versions(name)
	if err != nil {
		return "", false, err
	}
	for _, v := range versions {
		if v == query {
			return v, true, nil
		}
	}
	for i := len(versions) - 1; i >= 0; i-- {
		v := versions[i]
		if len(v) > len(query) && strings.HasPrefix(v, query) && strings.ContainsRune(".-+_", rune(v[len(query)])) {
			return v, true, nil
		}
	}
	return "", false, nil
}
