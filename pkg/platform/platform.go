// Package platform maps the running OS and CPU architecture onto the query
// parameters SDK distribution services expect.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is a normalized OS/architecture pair.
type Platform struct {
	OS   string `yaml:"os" json:"os"`
	Arch string `yaml:"arch" json:"arch"`
}

// Detect returns the platform of the running process.
func Detect() Platform {
	return Parse(runtime.GOOS, runtime.GOARCH)
}

// Parse normalizes os and arch aliases into a Platform. Unknown values are kept
// lowercased so that lookups fail with a readable error.
func Parse(os, arch string) Platform {
	return Platform{OS: NormalizeOS(os), Arch: NormalizeArch(arch)}
}

// String returns a string representation of the platform.
func (p Platform) String() string {
	return fmt.Sprintf("%s/%s", p.OS, p.Arch)
}

// IsMac reports whether p targets macOS.
func (p Platform) IsMac() bool { return p.OS == OSDarwin }

// IsWindows reports whether p targets Windows.
func (p Platform) IsWindows() bool { return p.OS == OSWindows }

// NormalizeOS normalizes OS names to runtime.GOOS spelling.
func NormalizeOS(os string) string {
	os = strings.ToLower(strings.TrimSpace(os))
	switch os {
	case "darwin", "macos", "mac", "osx":
		return OSDarwin
	case "win", "windows":
		return OSWindows
	default:
		return os
	}
}

// NormalizeArch normalizes architecture names to runtime.GOARCH spelling.
func NormalizeArch(arch string) string {
	arch = strings.ToLower(strings.TrimSpace(arch))
	switch arch {
	case "x86_64", "x64", "amd64":
		return ArchAMD64
	case "aarch64", "arm64":
		return ArchARM64
	default:
		return arch
	}
}
