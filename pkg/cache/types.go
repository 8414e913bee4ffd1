package cache

import "github.com/linux-china/wukong/pkg/store"

// Store is the part of a candidate store the cache inspects.
type Store interface {
	Layout() store.Layout
	Candidates() ([]string, error)
}

// CleanOptions specifies what to clean from the cache.
type CleanOptions struct {
	All      bool
	Archives bool
	Partials bool
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed   int64
	ArchiveFreed int64
	PartialFreed int64
}

// Info represents cache information.
type Info struct {
	Directories  []string
	TotalSize    int64
	ArchiveSize  int64
	ArchiveFiles int
	PartialSize  int64
	// Partials are leftover directories of interrupted installs.
	Partials []string
}
