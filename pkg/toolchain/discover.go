package toolchain

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/linux-china/wukong/pkg/store"
)

// Source is a directory whose children may be JDK homes.
type Source struct {
	Name string
	Dir  string
}

// JDK is a JDK home found below a Source.
type JDK struct {
	Source  string `json:"source"`
	Home    string `json:"home"`
	Version string `json:"version"`
	Vendor  string `json:"vendor,omitempty"`
}

// SystemSources returns the platform's well-known JDK install directories.
func SystemSources(goos, userHome string) []Source {
	switch goos {
	case "darwin":
		return []Source{
			{Name: "system", Dir: "/Library/Java/JavaVirtualMachines"},
			{Name: "user", Dir: filepath.Join(userHome, "Library", "Java", "JavaVirtualMachines")},
		}
	case "windows":
		return []Source{{Name: "system", Dir: `C:\Program Files\Java`}}
	default:
		return []Source{{Name: "system", Dir: "/usr/lib/jvm"}}
	}
}

// GradleSource returns the directory Gradle provisions toolchains into.
func GradleSource(userHome string) Source {
	return Source{Name: "gradle", Dir: filepath.Join(userHome, ".gradle", "jdks")}
}

// IsJDKHome reports whether dir contains a java launcher.
func IsJDKHome(dir string) bool {
	java := "java"
	if runtime.GOOS == "windows" {
		java = "java.exe"
	}
	info, err := os.Stat(filepath.Join(dir, "bin", java))
	return err == nil && !info.IsDir()
}

// Discover scans every source for JDK homes. macOS bundles are entered
// through Contents/Home. Unreadable sources are skipped. Results keep the
// order of sources, then directory order.
func Discover(sources []Source) []JDK {
	var found []JDK
	seen := map[string]bool{}
	for _, src := range sources {
		entries, err := os.ReadDir(src.Dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Name() == store.CurrentName || e.Name()[0] == '.' {
				continue
			}
			home := filepath.Join(src.Dir, e.Name())
			if bundle := filepath.Join(home, "Contents", "Home"); IsJDKHome(bundle) {
				home = bundle
			}
			if !IsJDKHome(home) {
				continue
			}
			resolved, err := filepath.EvalSymlinks(home)
			if err != nil {
				resolved = home
			}
			if seen[resolved] {
				continue
			}
			seen[resolved] = true

			jdk := JDK{Source: src.Name, Home: home, Version: e.Name()}
			if rel, err := store.ReadRelease(home); err == nil {
				jdk.Version = rel.FullVersion()
				jdk.Vendor = rel.Implementor
			}
			found = append(found, jdk)
		}
	}
	return found
}
