//go:generate mockgen -destination=./mocks/archive.go . Extractor

// Package archive unpacks SDK archives into a candidate home, rewriting entry
// paths with a root policy, and builds archives for fixtures.
package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
	"github.com/mholt/archives"
)

// Extractor unpacks a staged archive into a destination directory.
type Extractor interface {
	// Extract unpacks archivePath into destDir according to desc and deletes
	// archivePath once every entry has been written.
	Extract(ctx context.Context, archivePath, destDir string, desc Descriptor) error
}

// Manager handles archive extraction and creation operations.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Extract implements Extractor.
func (am *Manager) Extract(ctx context.Context, archivePath, destDir string, desc Descriptor) error {
	src, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %v: %w", archivePath, err, errors.ErrExtraction)
	}
	defer func() { _ = src.Close() }()

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %v: %w", destDir, err, errors.ErrExtraction)
	}
	if err := os.MkdirAll(absDest, fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create destination directory: %v: %w", err, errors.ErrExtraction)
	}

	ex := &entryWriter{dest: absDest, policy: desc.Policy}
	var extractor archives.Extractor
	switch desc.Format {
	case Zip:
		extractor = archives.Zip{}
	case TarGz:
		extractor = archives.CompressedArchive{
			Compression: archives.Gz{},
			Extraction:  archives.Tar{},
		}
	default:
		return fmt.Errorf("unsupported archive format %v: %w", desc.Format, errors.ErrExtraction)
	}

	if err := extractor.Extract(ctx, src, ex.handle); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errorsIsExtraction(err) {
			return err
		}
		return fmt.Errorf("failed to extract %s: %v: %w", filepath.Base(archivePath), err, errors.ErrExtraction)
	}

	logger.Debug("Extracted archive", logger.Fields{
		"archive": filepath.Base(archivePath),
		"dest":    absDest,
		"entries": ex.written,
		"skipped": ex.skipped,
		"policy":  desc.Policy.String(),
	})

	_ = src.Close()
	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		logger.Warn("Could not remove staged archive", logger.Fields{"path": archivePath, "error": err.Error()})
	}
	return nil
}

func errorsIsExtraction(err error) bool {
	return errors.Classify(err) == errors.ErrExtraction
}

// entryWriter writes rewritten archive entries below dest.
type entryWriter struct {
	dest    string
	policy  RootPolicy
	written int
	skipped int
}

func (w *entryWriter) handle(ctx context.Context, info archives.FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := info.NameInArchive
	if info.IsDir() && !strings.HasSuffix(name, "/") {
		name += "/"
	}
	rel, ok := w.policy.Rewrite(name)
	if !ok {
		w.skipped++
		return nil
	}
	target, err := w.safeJoin(rel)
	if err != nil {
		return err
	}
	if err := w.checkParents(rel); err != nil {
		return err
	}

	switch {
	case info.IsDir():
		if err := os.MkdirAll(target, fsutil.DirModeDefault); err != nil {
			return fmt.Errorf("failed to create directory %s: %v: %w", rel, err, errors.ErrExtraction)
		}
		return nil
	case isHardLink(info):
		err = w.writeHardLink(info, target)
	case info.Mode()&fs.ModeSymlink != 0:
		err = w.writeSymlink(info, target)
	case info.Mode().IsRegular():
		err = writeRegularFile(info, target)
	default:
		w.skipped++
		return nil
	}
	if err != nil {
		return err
	}
	w.written++
	return nil
}

// safeJoin joins rel onto dest and rejects results that leave dest.
func (w *entryWriter) safeJoin(rel string) (string, error) {
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("entry %q has an absolute path: %w", rel, errors.ErrExtraction)
	}
	target := filepath.Join(w.dest, filepath.FromSlash(rel))
	if !w.contains(target) {
		return "", fmt.Errorf("entry %q escapes the destination directory: %w", rel, errors.ErrExtraction)
	}
	return target, nil
}

// contains reports whether the cleaned path is dest or lies below it.
func (w *entryWriter) contains(path string) bool {
	inside, err := filepath.Rel(w.dest, filepath.Clean(path))
	return err == nil && inside != ".." && !strings.HasPrefix(inside, ".."+string(filepath.Separator))
}

// checkParents refuses entries whose parent directories include a symlink
// already present below dest, so no write can be redirected through one.
func (w *entryWriter) checkParents(rel string) error {
	dir := filepath.Dir(filepath.FromSlash(strings.TrimSuffix(rel, "/")))
	if dir == "." || dir == "" {
		return nil
	}
	current := w.dest
	for _, part := range strings.Split(dir, string(filepath.Separator)) {
		if part == "" || part == "." {
			continue
		}
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %v: %w", current, err, errors.ErrExtraction)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("entry %q is written through symlink %s: %w", rel, current, errors.ErrExtraction)
		}
	}
	return nil
}

func isHardLink(info archives.FileInfo) bool {
	hdr, ok := info.Header.(*tar.Header)
	return ok && hdr.Typeflag == tar.TypeLink
}

func (w *entryWriter) writeHardLink(info archives.FileInfo, target string) error {
	linkRel, ok := w.policy.Rewrite(info.LinkTarget)
	if !ok {
		return fmt.Errorf("hard link %s points outside the extracted tree: %w", info.NameInArchive, errors.ErrExtraction)
	}
	source, err := w.safeJoin(linkRel)
	if err != nil {
		return err
	}
	if err := w.checkParents(linkRel); err != nil {
		return err
	}
	if err := fsutil.EnsureFileDir(target); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %v: %w", target, err, errors.ErrExtraction)
	}
	_ = os.Remove(target)
	if err := os.Link(source, target); err != nil {
		return fmt.Errorf("failed to create hard link %s: %v: %w", target, err, errors.ErrExtraction)
	}
	return nil
}

// writeSymlink recreates a symlink entry. Zip archives store the link target as the entry content.
func (w *entryWriter) writeSymlink(info archives.FileInfo, target string) error {
	linkTarget := info.LinkTarget
	if linkTarget == "" {
		f, err := info.Open()
		if err != nil {
			return fmt.Errorf("failed to read symlink %s: %v: %w", info.NameInArchive, err, errors.ErrExtraction)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("failed to read symlink target %s: %v: %w", info.NameInArchive, err, errors.ErrExtraction)
		}
		linkTarget = string(data)
	}
	if filepath.IsAbs(linkTarget) || filepath.VolumeName(linkTarget) != "" {
		return fmt.Errorf("symlink %s has absolute target %q: %w", info.NameInArchive, linkTarget, errors.ErrExtraction)
	}
	if !w.contains(filepath.Join(filepath.Dir(target), filepath.FromSlash(linkTarget))) {
		return fmt.Errorf("symlink %s points outside the destination directory: %w", info.NameInArchive, errors.ErrExtraction)
	}

	if err := fsutil.EnsureFileDir(target); err != nil {
		return fmt.Errorf("failed to create parent directory for symlink %s: %v: %w", target, err, errors.ErrExtraction)
	}
	_ = os.Remove(target)
	if err := os.Symlink(linkTarget, target); err != nil {
		return fmt.Errorf("failed to create symlink %s: %v: %w", target, err, errors.ErrExtraction)
	}
	return nil
}

// writeRegularFile writes a regular file and preserves its permissions and modification time.
func writeRegularFile(info archives.FileInfo, target string) error {
	src, err := info.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry %s: %v: %w", info.NameInArchive, err, errors.ErrExtraction)
	}
	defer func() { _ = src.Close() }()

	if err := fsutil.EnsureFileDir(target); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %v: %w", target, err, errors.ErrExtraction)
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}
	_ = os.Remove(target)
	dst, err := fsutil.CreateFilePerm(target, perm)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %v: %w", target, err, errors.ErrExtraction)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to write %s: %v: %w", target, err, errors.ErrExtraction)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %v: %w", target, err, errors.ErrExtraction)
	}

	if err := os.Chmod(target, perm); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %v: %w", target, err, errors.ErrExtraction)
	}
	if mtime := info.ModTime(); !mtime.IsZero() {
		if err := os.Chtimes(target, mtime, mtime); err != nil {
			return fmt.Errorf("failed to set modification time for %s: %v: %w", target, err, errors.ErrExtraction)
		}
	}
	return nil
}

// Create writes sourceDir into archivePath. The format follows the archive
// file name; the entries are placed under rootName when it is not empty.
func (am *Manager) Create(ctx context.Context, sourceDir, archivePath, rootName string) error {
	format, err := FormatFromName(archivePath)
	if err != nil {
		return err
	}

	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for source directory: %w", err)
	}

	archiveFiles, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): rootName,
	})
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	file, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	defer func() {
		_ = file.Sync()
		_ = file.Close()
	}()

	var archiver archives.Archiver
	if format == Zip {
		archiver = archives.Zip{}
	} else {
		archiver = archives.CompressedArchive{
			Compression: archives.Gz{},
			Archival:    archives.Tar{},
		}
	}

	if err := archiver.Archive(ctx, file, archiveFiles); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return nil
}
