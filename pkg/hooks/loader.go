package hooks

import (
	"os"
	"path/filepath"

	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/errors"
)

// HookFileExtension is the extension of hook script files.
const HookFileExtension = ".tengo"

// HookPath returns the script path of hookType below dir.
func HookPath(dir string, hookType HookType) string {
	return filepath.Join(dir, string(hookType)+HookFileExtension)
}

// LoadHooksFromDir registers every <hook-type>.tengo script found in dir.
// A missing directory loads nothing.
func LoadHooksFromDir(manager HookManager, dir string) error {
	if dir == "" {
		return nil
	}
	for _, hookType := range Types() {
		path := HookPath(dir, hookType)
		content, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "error reading hook file %s", path)
		}
		if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return errors.Wrapf(err, "error adding hook %s", hookType)
		}
		logger.Debug("Loaded hook", logger.Fields{"type": string(hookType), "path": path})
	}
	return nil
}

// HookTemplate generates a starter script for a hook type.
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PostInstall:
		return `// Post-install hook
// Runs after a candidate version has been unpacked into its home.
// Available variables:
// - candidate: string - candidate name, e.g. "java"
// - version: string - installed version
// - candidateHome: string - directory the version was installed into
// Assign a message to err to report a failure.

/*
os := import("os")
if !is_error(os.stat(candidateHome + "/bin")) {
    fmt := import("fmt")
    fmt.println("installed ", candidate, " ", version)
}
*/`

	case PreUninstall:
		return `// Pre-uninstall hook
// Runs before a candidate version is removed. Setting err aborts the removal.
// Available variables: same as post-install

/*
if candidate == "java" && version == "8.0.392-tem" {
    err = "refusing to remove the build JDK"
}
*/`

	case PostUninstall:
		return `// Post-uninstall hook
// Runs after a candidate version has been removed.
// Available variables: same as post-install`

	case PostDefault:
		return `// Post-default hook
// Runs after the current version of a candidate has been switched.
// Available variables: same as post-install`

	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
