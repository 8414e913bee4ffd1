package cache

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/linux-china/wukong/internal/logger"
)

// Operation renders cache actions as human-readable messages.
type Operation struct {
	manager *Manager
}

// NewOperation creates a new cache operation instance.
func NewOperation(manager *Manager) *Operation {
	return &Operation{manager: manager}
}

func formatBytes(n int64) string {
	return humanize.Bytes(uint64(n))
}

// Clean cleans the cache based on the provided options.
func (op *Operation) Clean(all, archives, partials bool) (string, error) {
	options := CleanOptions{All: all, Archives: archives, Partials: partials}

	logger.Debug("Cleaning cache", logger.Fields{
		"all":      options.All,
		"archives": options.Archives,
		"partials": options.Partials,
	})

	result, err := op.manager.Clean(options)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCacheClean, err)
	}

	if result.TotalFreed == 0 {
		return "No files were removed from the cache.", nil
	}
	msg := fmt.Sprintf("Successfully cleaned cache. Freed %s of disk space.", formatBytes(result.TotalFreed))
	if result.ArchiveFreed > 0 {
		msg += fmt.Sprintf("\n- Archives: %s", formatBytes(result.ArchiveFreed))
	}
	if result.PartialFreed > 0 {
		msg += fmt.Sprintf("\n- Partial installs: %s", formatBytes(result.PartialFreed))
	}
	return msg, nil
}

// GetInfo returns information about the cache.
func (op *Operation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCacheInfo, err)
	}

	return fmt.Sprintf(`Cache Information:
  Directories:      %s
  Total Size:       %s
  Archives:         %s (%d files)
  Partial installs: %s (%d dirs)`,
		strings.Join(info.Directories, ", "),
		formatBytes(info.TotalSize),
		formatBytes(info.ArchiveSize),
		info.ArchiveFiles,
		formatBytes(info.PartialSize),
		len(info.Partials),
	), nil
}

// Directories returns the staging directories.
func (op *Operation) Directories() []string {
	return op.manager.Directories()
}
