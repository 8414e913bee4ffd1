// Package cache reports and reclaims the disk space used by staged archives
// and interrupted installs of the candidate stores.
package cache

import (
	"os"
	"path/filepath"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
	"github.com/linux-china/wukong/pkg/store"
)

// Manager inspects the staging areas of one or more stores.
type Manager struct {
	stores []Store
}

// NewManager creates a cache manager over stores.
func NewManager(stores ...Store) *Manager {
	return &Manager{stores: stores}
}

// Directories returns the staging directory of every store.
func (cm *Manager) Directories() []string {
	dirs := make([]string, 0, len(cm.stores))
	for _, s := range cm.stores {
		dirs = append(dirs, s.Layout().StagingDir())
	}
	return dirs
}

// Clean removes cached files according to the specified options.
func (cm *Manager) Clean(options CleanOptions) (*CleanResult, error) {
	result := &CleanResult{}

	// Default to cleaning all if no specific flags are set
	if !options.Archives && !options.Partials {
		options.All = true
	}

	if options.All || options.Archives {
		for _, dir := range cm.Directories() {
			size, err := cleanDirectory(dir)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to clean staged archives")
			}
			result.ArchiveFreed += size
		}
		result.TotalFreed += result.ArchiveFreed
	}

	if options.All || options.Partials {
		partials, err := cm.partials()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to clean partial installs")
		}
		for _, dir := range partials {
			size, _, err := fsutil.DirSize(dir)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to size %s", dir)
			}
			if err := os.RemoveAll(dir); err != nil {
				return nil, errors.Wrapf(err, "failed to remove %s", dir)
			}
			result.PartialFreed += size
		}
		result.TotalFreed += result.PartialFreed
	}

	return result, nil
}

// GetInfo returns information about the cache.
func (cm *Manager) GetInfo() (*Info, error) {
	info := &Info{Directories: cm.Directories()}

	for _, dir := range info.Directories {
		size, files, err := fsutil.DirSize(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get staging info")
		}
		info.ArchiveSize += size
		info.ArchiveFiles += files
	}

	partials, err := cm.partials()
	if err != nil {
		return nil, err
	}
	for _, dir := range partials {
		size, _, err := fsutil.DirSize(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to size %s", dir)
		}
		info.PartialSize += size
	}
	info.Partials = partials

	info.TotalSize = info.ArchiveSize + info.PartialSize
	return info, nil
}

// partials lists leftover in-progress install directories of every store.
func (cm *Manager) partials() ([]string, error) {
	var found []string
	for _, s := range cm.stores {
		names, err := s.Candidates()
		if err != nil {
			return nil, err
		}
		if s.Layout().IsJBang() {
			// an interrupted first JDK install leaves no version to list
			names = []string{"java"}
		}
		seen := map[string]bool{}
		for _, name := range names {
			dir := s.Layout().CandidateDir(name)
			if seen[dir] {
				continue
			}
			seen[dir] = true
			entries, err := os.ReadDir(dir)
			if err != nil && !os.IsNotExist(err) {
				return nil, errors.Wrapf(err, "failed to read %s", dir)
			}
			for _, e := range entries {
				if e.IsDir() && store.IsPartial(e.Name()) {
					found = append(found, filepath.Join(dir, e.Name()))
				}
			}
		}
	}
	return found, nil
}

// cleanDirectory empties dir and returns bytes freed.
func cleanDirectory(dir string) (int64, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	totalSize, _, err := fsutil.DirSize(dir)
	if err != nil {
		return 0, errors.Wrapf(err, "error walking directory %s", dir)
	}

	if err := os.RemoveAll(dir); err != nil {
		return 0, errors.Wrapf(err, "failed to remove directory %s", dir)
	}
	if err := os.MkdirAll(dir, fsutil.DirModeDefault); err != nil {
		return totalSize, errors.Wrapf(err, "failed to recreate directory %s", dir)
	}

	return totalSize, nil
}
