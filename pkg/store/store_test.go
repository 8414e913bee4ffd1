package store

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linux-china/wukong/pkg/archive"
	amocks "github.com/linux-china/wukong/pkg/archive/mocks"
	dlmocks "github.com/linux-china/wukong/pkg/download/mocks"
	pkgerrors "github.com/linux-china/wukong/pkg/errors"
)

func skipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
}

// jdkFixture builds a tar.gz whose entries sit below a "jdk-21.0.2+13" wrapper directory.
func jdkFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "bin", "java"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "release"), []byte("JAVA_VERSION=\"21.0.2\"\n"), 0o644))

	path := filepath.Join(dir, "fixture.tar.gz")
	require.NoError(t, archive.NewManager().Create(context.Background(), src, path, "jdk-21.0.2+13"))
	return path
}

// copyFetcher answers Fetch by copying a local fixture onto the staging path.
func copyFetcher(t *testing.T, fixture string) func(context.Context, string, string) (int64, error) {
	return func(_ context.Context, _ string, staging string) (int64, error) {
		data, err := os.ReadFile(fixture)
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Dir(staging), 0o755))
		require.NoError(t, os.WriteFile(staging, data, 0o644))
		return int64(len(data)), nil
	}
}

func tarDesc() archive.Descriptor {
	return archive.Descriptor{
		URL:      "https://cdn.example.com/OpenJDK21U-jdk_x64_linux_hotspot_21.0.2_13.tar.gz",
		Format:   archive.TarGz,
		Policy:   archive.StripFirst,
		Filename: "OpenJDK21U-jdk_x64_linux_hotspot_21.0.2_13.tar.gz",
	}
}

func TestLayouts(t *testing.T) {
	sdk := NewSDKMANLayout("/sdk")
	assert.Equal(t, filepath.Join("/sdk", "candidates", "java", "21"), sdk.Home("java", "21"))
	assert.Equal(t, filepath.Join("/sdk", "candidates", "java", "current"), sdk.CurrentLink("java"))
	assert.Equal(t, filepath.Join("/sdk", "tmp"), sdk.StagingDir())
	assert.False(t, sdk.IsJBang())

	jb := NewJBangLayout("/jb")
	assert.Equal(t, filepath.Join("/jb", "cache", "jdks", "21"), jb.Home("java", "21"))
	assert.Equal(t, filepath.Join("/jb", "currentjdk"), jb.CurrentLink("java"))
	assert.Equal(t, filepath.Join("/jb", "cache", "tmp"), jb.StagingDir())
	assert.True(t, jb.IsJBang())
}

func TestStore_Install(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	fixture := jdkFixture(t)
	c := Candidate{Name: "java", Version: "21"}

	fetcher := dlmocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), tarDesc().URL, filepath.Join(root, "tmp", "java-21-"+tarDesc().Filename)).
		DoAndReturn(copyFetcher(t, fixture)).
		Times(1)

	s := New(NewSDKMANLayout(root), fetcher, archive.NewManager())
	assert.False(t, s.Exists(c))

	res, err := s.Install(context.Background(), c, tarDesc())
	require.NoError(t, err)
	assert.False(t, res.AlreadyInstalled)
	assert.Positive(t, res.Size)
	assert.Equal(t, filepath.Join(root, "candidates", "java", "21"), res.Home)

	assert.True(t, s.Exists(c))
	assert.FileExists(t, filepath.Join(res.Home, "bin", "java"))
	assert.NoDirExists(t, filepath.Join(res.Home, "jdk-21.0.2+13"))
	assert.NoFileExists(t, s.StagingPath(c, tarDesc().Filename))

	// a second install is a no-op: the fetcher expectation above allows one call only
	res, err = s.Install(context.Background(), c, tarDesc())
	require.NoError(t, err)
	assert.True(t, res.AlreadyInstalled)

	versions, err := s.Versions("java")
	require.NoError(t, err)
	assert.Equal(t, []string{"21"}, versions)
}

func TestStore_InstallExtractionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	c := Candidate{Name: "java", Version: "21"}

	fetcher := dlmocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(10), nil)

	extractor := amocks.NewMockExtractor(ctrl)
	extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any(), tarDesc()).DoAndReturn(
		func(_ context.Context, _, dest string, _ archive.Descriptor) error {
			// half of the tree is written before the archive turns out to be truncated
			require.NoError(t, os.MkdirAll(filepath.Join(dest, "bin"), 0o755))
			return pkgerrors.ErrExtraction
		})

	s := New(NewSDKMANLayout(root), fetcher, extractor)
	_, err := s.Install(context.Background(), c, tarDesc())
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrExtraction)

	var candErr *pkgerrors.CandidateError
	require.ErrorAs(t, err, &candErr)
	assert.Equal(t, "java", candErr.Name)

	assert.False(t, s.Exists(c))
	entries, err := os.ReadDir(s.CandidateDir("java"))
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial install is left behind")
}

func TestStore_InstallDownloadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := dlmocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), pkgerrors.ErrDownload)
	extractor := amocks.NewMockExtractor(ctrl)

	s := New(NewSDKMANLayout(t.TempDir()), fetcher, extractor)
	_, err := s.Install(context.Background(), Candidate{Name: "maven", Version: "3.9.6"}, tarDesc())
	assert.ErrorIs(t, err, pkgerrors.ErrDownload)
	assert.False(t, s.Exists(Candidate{Name: "maven", Version: "3.9.6"}))
}

func TestStore_InvalidCandidate(t *testing.T) {
	s := New(NewSDKMANLayout(t.TempDir()), nil, nil)
	for _, c := range []Candidate{
		{Name: "", Version: "1"},
		{Name: "java", Version: ""},
		{Name: "java", Version: "../../etc"},
		{Name: "java", Version: "current"},
		{Name: "java", Version: ".hidden"},
	} {
		_, err := s.Install(context.Background(), c, tarDesc())
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidPath, "%+v", c)
		assert.False(t, s.Exists(c))
	}
}

func TestStore_InstallFromLocalPath(t *testing.T) {
	skipWithoutSymlinks(t)

	root := t.TempDir()
	source := filepath.Join(t.TempDir(), "my-jdk")
	require.NoError(t, os.MkdirAll(filepath.Join(source, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "bin", "java"), []byte("java"), 0o755))

	s := New(NewSDKMANLayout(root), nil, nil)

	linked := Candidate{Name: "java", Version: "21-local"}
	res, err := s.InstallFromLocalPath(linked, source, Symlink)
	require.NoError(t, err)
	assert.False(t, res.AlreadyInstalled)
	target, err := os.Readlink(s.Home(linked))
	require.NoError(t, err)
	assert.Equal(t, source, target)

	res, err = s.InstallFromLocalPath(linked, source, Symlink)
	require.NoError(t, err)
	assert.True(t, res.AlreadyInstalled)

	copied := Candidate{Name: "java", Version: "21-copy"}
	_, err = s.InstallFromLocalPath(copied, source, Copy)
	require.NoError(t, err)
	info, err := os.Lstat(s.Home(copied))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.FileExists(t, filepath.Join(s.Home(copied), "bin", "java"))

	// removing a linked install never touches the user's tree
	require.NoError(t, s.Uninstall(linked))
	assert.FileExists(t, filepath.Join(source, "bin", "java"))
	assert.False(t, s.Exists(linked))

	_, err = s.InstallFromLocalPath(Candidate{Name: "java", Version: "x"}, filepath.Join(source, "missing"), Symlink)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidPath)
}

func installLocal(t *testing.T, s *Store, c Candidate) {
	t.Helper()
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "marker"), []byte(c.Version), 0o644))
	_, err := s.InstallFromLocalPath(c, src, Copy)
	require.NoError(t, err)
}

func TestStore_CurrentLink(t *testing.T) {
	skipWithoutSymlinks(t)

	s := New(NewSDKMANLayout(t.TempDir()), nil, nil)
	v17 := Candidate{Name: "java", Version: "17.0.9-tem"}
	v21 := Candidate{Name: "java", Version: "21.0.2-tem"}
	installLocal(t, s, v17)
	installLocal(t, s, v21)

	_, ok, err := s.Current("java")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetCurrent(v17))
	cur, ok, err := s.Current("java")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, v17.Version, cur)

	require.NoError(t, s.SetCurrent(v21))
	cur, _, err = s.Current("java")
	require.NoError(t, err)
	assert.Equal(t, v21.Version, cur)

	home, ok, err := s.CurrentHome("java")
	require.NoError(t, err)
	assert.True(t, ok)
	data, err := os.ReadFile(filepath.Join(home, "marker"))
	require.NoError(t, err)
	assert.Equal(t, v21.Version, string(data))

	// only one current entry and no leftover temp links
	entries, err := os.ReadDir(s.CandidateDir("java"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"17.0.9-tem", "21.0.2-tem", "current"}, names)

	err = s.SetCurrent(Candidate{Name: "java", Version: "11.0.21-tem"})
	assert.ErrorIs(t, err, pkgerrors.ErrNotInstalled)
	cur, _, _ = s.Current("java")
	assert.Equal(t, v21.Version, cur, "a failed switch keeps the previous version")

	require.NoError(t, s.ClearCurrent("java"))
	require.NoError(t, s.ClearCurrent("java"))
	_, ok, err = s.Current("java")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Uninstall(t *testing.T) {
	skipWithoutSymlinks(t)

	s := New(NewSDKMANLayout(t.TempDir()), nil, nil)
	v17 := Candidate{Name: "java", Version: "17"}
	v21 := Candidate{Name: "java", Version: "21"}
	installLocal(t, s, v17)
	installLocal(t, s, v21)
	require.NoError(t, s.SetCurrent(v21))

	require.NoError(t, s.Uninstall(v17))
	cur, ok, _ := s.Current("java")
	assert.True(t, ok, "removing another version keeps current")
	assert.Equal(t, "21", cur)

	require.NoError(t, s.Uninstall(v21))
	_, ok, _ = s.Current("java")
	assert.False(t, ok, "removing the current version clears the link")
	_, err := os.Lstat(filepath.Join(s.CandidateDir("java"), CurrentName))
	assert.True(t, os.IsNotExist(err))
	assert.NoDirExists(t, s.CandidateDir("java"), "the emptied candidate dir is removed")

	err = s.Uninstall(v21)
	assert.ErrorIs(t, err, pkgerrors.ErrNotInstalled)
}

func TestStore_VersionsAndFind(t *testing.T) {
	skipWithoutSymlinks(t)

	s := New(NewSDKMANLayout(t.TempDir()), nil, nil)
	for _, v := range []string{"21.0.2-tem", "8.0.392-tem", "17.0.9-tem", "21.0.10-tem", "nightly"} {
		installLocal(t, s, Candidate{Name: "java", Version: v})
	}
	require.NoError(t, s.SetCurrent(Candidate{Name: "java", Version: "17.0.9-tem"}))
	require.NoError(t, os.MkdirAll(filepath.Join(s.CandidateDir("java"), ".22.partial-123"), 0o755))

	versions, err := s.Versions("java")
	require.NoError(t, err)
	assert.Equal(t, []string{"8.0.392-tem", "17.0.9-tem", "21.0.2-tem", "21.0.10-tem", "nightly"}, versions)

	v, ok, err := s.FindVersion("java", "21")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "21.0.10-tem", v)

	v, ok, _ = s.FindVersion("java", "nightly")
	assert.True(t, ok)
	assert.Equal(t, "nightly", v)

	_, ok, _ = s.FindVersion("java", "2")
	assert.False(t, ok)

	names, err := s.Candidates()
	require.NoError(t, err)
	assert.Equal(t, []string{"java"}, names)

	empty, err := s.Versions("kotlin")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
