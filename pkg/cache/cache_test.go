package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linux-china/wukong/pkg/cache"
	"github.com/linux-china/wukong/pkg/fsutil"
	"github.com/linux-china/wukong/pkg/store"
)

// setupTestCache stages one archive and leaves one interrupted install behind.
func setupTestCache(t *testing.T) (*store.Store, string) {
	t.Helper()
	st := store.New(store.NewSDKMANLayout(t.TempDir()), nil, nil)

	staging := st.Layout().StagingDir()
	require.NoError(t, os.MkdirAll(staging, fsutil.DirModeDefault))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "java-21-jdk.tar.gz"), []byte("test archive data"), fsutil.FileModeDefault))

	partial := filepath.Join(st.CandidateDir("java"), ".21.partial-1234")
	require.NoError(t, os.MkdirAll(filepath.Join(partial, "bin"), fsutil.DirModeDefault))
	require.NoError(t, os.WriteFile(filepath.Join(partial, "bin", "java"), []byte("partial"), fsutil.FileModeDefault))

	installed := st.Home(store.Candidate{Name: "java", Version: "17"})
	require.NoError(t, os.MkdirAll(installed, fsutil.DirModeDefault))
	return st, partial
}

func TestGetInfo(t *testing.T) {
	st, partial := setupTestCache(t)
	mgr := cache.NewManager(st)

	info, err := mgr.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{st.Layout().StagingDir()}, info.Directories)
	assert.Equal(t, 1, info.ArchiveFiles)
	assert.Positive(t, info.ArchiveSize)
	assert.Equal(t, []string{partial}, info.Partials)
	assert.Equal(t, info.ArchiveSize+info.PartialSize, info.TotalSize)
}

func TestGetInfoEmptyCache(t *testing.T) {
	st := store.New(store.NewJBangLayout(filepath.Join(t.TempDir(), "nonexistent")), nil, nil)
	mgr := cache.NewManager(st)

	info, err := mgr.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.TotalSize)
	assert.Empty(t, info.Partials)
}

func TestClean(t *testing.T) {
	tests := []struct {
		name        string
		options     cache.CleanOptions
		archiveGone bool
		partialGone bool
	}{
		{"default cleans all", cache.CleanOptions{}, true, true},
		{"archives only", cache.CleanOptions{Archives: true}, true, false},
		{"partials only", cache.CleanOptions{Partials: true}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, partial := setupTestCache(t)
			archive := filepath.Join(st.Layout().StagingDir(), "java-21-jdk.tar.gz")

			result, err := cache.NewManager(st).Clean(tt.options)
			require.NoError(t, err)
			assert.Equal(t, result.ArchiveFreed+result.PartialFreed, result.TotalFreed)

			_, err = os.Stat(archive)
			assert.Equal(t, tt.archiveGone, os.IsNotExist(err))
			_, err = os.Stat(partial)
			assert.Equal(t, tt.partialGone, os.IsNotExist(err))

			assert.DirExists(t, st.Home(store.Candidate{Name: "java", Version: "17"}), "installed versions are never touched")
			assert.DirExists(t, st.Layout().StagingDir())
		})
	}
}

func TestOperation(t *testing.T) {
	st, _ := setupTestCache(t)
	op := cache.NewOperation(cache.NewManager(st))

	info, err := op.GetInfo()
	require.NoError(t, err)
	assert.Contains(t, info, "Partial installs:")

	msg, err := op.Clean(true, false, false)
	require.NoError(t, err)
	assert.Contains(t, msg, "Successfully cleaned cache")
	assert.Contains(t, msg, "Freed")

	msg, err = op.Clean(true, false, false)
	require.NoError(t, err)
	assert.Equal(t, "No files were removed from the cache.", msg)
}
