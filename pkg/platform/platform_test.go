package platform

import (
	"errors"
	"net/url"
	"runtime"
	"testing"

	pkgerrors "github.com/linux-china/wukong/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	p := Detect()

	assert.Equal(t, NormalizeOS(runtime.GOOS), p.OS)
	assert.Equal(t, NormalizeArch(runtime.GOARCH), p.Arch)
}

func TestParse(t *testing.T) {
	tests := []struct {
		os, arch string
		expected Platform
	}{
		{"Linux", "x86_64", Platform{OSLinux, ArchAMD64}},
		{"macos", "aarch64", Platform{OSDarwin, ArchARM64}},
		{"mac", "x64", Platform{OSDarwin, ArchAMD64}},
		{"win", "AMD64", Platform{OSWindows, ArchAMD64}},
		{"freebsd", "riscv64", Platform{"freebsd", "riscv64"}},
	}

	for _, tt := range tests {
		t.Run(tt.os+"/"+tt.arch, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.os, tt.arch))
		})
	}
}

func TestDiscoParams(t *testing.T) {
	tests := []struct {
		platform Platform
		expected Params
	}{
		{Platform{OSLinux, ArchAMD64}, Params{"x64", "linux", "glibc", "tar.gz"}},
		{Platform{OSLinux, ArchARM64}, Params{"aarch64", "linux", "glibc", "tar.gz"}},
		{Platform{OSDarwin, ArchAMD64}, Params{"x64", "mac", "libc", "tar.gz"}},
		{Platform{OSDarwin, ArchARM64}, Params{"aarch64", "mac", "libc", "tar.gz"}},
		{Platform{OSWindows, ArchAMD64}, Params{"x64", "windows", "c_std_lib", "zip"}},
		{Platform{OSWindows, ArchARM64}, Params{"aarch64", "windows", "c_std_lib", "zip"}},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			params, err := DiscoParams(tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, params)
			assert.True(t, Supported(tt.platform))
		})
	}
}

func TestDiscoParams_Query(t *testing.T) {
	params, err := DiscoParams(Parse("linux", "aarch64"))
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"architecture":     {"aarch64"},
		"operating_system": {"linux"},
		"libc_type":        {"glibc"},
		"archive_type":     {"tar.gz"},
	}, params.Query())
}

func TestBrokerToken(t *testing.T) {
	tests := map[Platform]string{
		{OSLinux, ArchAMD64}:   "linuxx64",
		{OSLinux, ArchARM64}:   "linuxarm64",
		{OSDarwin, ArchAMD64}:  "darwinx64",
		{OSDarwin, ArchARM64}:  "darwinarm64",
		{OSWindows, ArchAMD64}: "windowsx64",
		{OSWindows, ArchARM64}: "windowsarm64",
	}

	for p, expected := range tests {
		t.Run(p.String(), func(t *testing.T) {
			token, err := BrokerToken(p)
			require.NoError(t, err)
			assert.Equal(t, expected, token)
		})
	}
}

func TestUnsupportedPlatform(t *testing.T) {
	for _, p := range []Platform{
		Parse("freebsd", "amd64"),
		Parse("linux", "386"),
		Parse("linux", "riscv64"),
		{},
	} {
		t.Run(p.String(), func(t *testing.T) {
			_, err := DiscoParams(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pkgerrors.ErrUnsupportedPlatform))

			_, err = BrokerToken(p)
			assert.ErrorIs(t, err, pkgerrors.ErrUnsupportedPlatform)
			assert.False(t, Supported(p))
		})
	}
}

func TestPlatformHelpers(t *testing.T) {
	assert.True(t, Parse("macos", "arm64").IsMac())
	assert.False(t, Parse("linux", "arm64").IsMac())
	assert.True(t, Parse("windows", "amd64").IsWindows())
	assert.Equal(t, "linux/amd64", Parse("linux", "x86_64").String())
	assert.ElementsMatch(t, []string{"linux", "darwin", "windows"}, ValidOS())
	assert.ElementsMatch(t, []string{"amd64", "arm64"}, ValidArch())
}
