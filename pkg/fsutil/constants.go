// Package fsutil provides file system helpers shared by the candidate store,
// the download stager and the archive extractor.
package fsutil

// File and directory permission constants.
const (
	FileModeMask = 0o777 // Full permission mask for files
	DirModeMask  = 0o777 // Full permission mask for directories

	FileModeDefault = 0o644 // -rw-r--r--
	FileModeSecure  = 0o640 // -rw-r-----
	FileModeExec    = 0o755 // -rwxr-xr-x

	DirModeDefault = 0o755 // drwxr-xr-x
	DirModeSecure  = 0o750 // drwxr-x---
	DirModePrivate = 0o700 // drwx------
)
