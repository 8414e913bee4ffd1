package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "creates new directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "candidates")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "candidates", "java", "21")
			},
		},
		{
			name: "succeeds when directory already exists",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)

			require.NoError(t, EnsureDir(path))
			assert.DirExists(t, path)
		})
	}
}

func TestEnsureFileDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m2", "toolchains.xml")

	require.NoError(t, EnsureFileDir(path))

	assert.DirExists(t, filepath.Dir(path))
	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(DirModeDefault), info.Mode().Perm())
	}
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
	assert.False(t, IsDir(filepath.Join(dir, "missing")))

	if runtime.GOOS != "windows" {
		link := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(dir, link))
		assert.True(t, IsDir(link))
	}
}

func TestIsDirEmpty(t *testing.T) {
	dir := t.TempDir()

	empty, err := IsDirEmpty(dir)
	require.NoError(t, err)
	assert.True(t, empty)

	empty, err = IsDirEmpty(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "release"), []byte("x"), 0o644))
	empty, err = IsDirEmpty(dir)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 10), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 32), 0o644))

	size, count, err := DirSize(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(42), size)
	assert.Equal(t, 2, count)

	size, count, err = DirSize(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Zero(t, size)
	assert.Zero(t, count)
}
