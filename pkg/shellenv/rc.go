package shellenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
)

// RCFile is the per-project file pinning candidate versions.
const RCFile = ".sdkmanrc"

// EnvrcFile is the direnv configuration file.
const EnvrcFile = ".envrc"

var rcHeader = []string{
	"# Enable auto-env through the sdkman_auto_env config",
	"# Add key=value pairs of SDKs to use below",
}

// ErrRCExists is returned by InitRC when the directory already has an .sdkmanrc.
var ErrRCExists = fmt.Errorf("%s already exists", RCFile)

// Entry is one candidate=version line of an .sdkmanrc.
type Entry struct {
	Candidate string
	Version   string
}

func (e Entry) String() string { return e.Candidate + "=" + e.Version }

// RCPath returns the .sdkmanrc path of dir.
func RCPath(dir string) string { return filepath.Join(dir, RCFile) }

// ReadRC parses the .sdkmanrc of dir in file order. The returned error
// satisfies os.IsNotExist when the file is absent.
func ReadRC(dir string) ([]Entry, error) {
	path := RCPath(dir)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	entries := make([]Entry, 0, p.Len())
	for _, k := range p.Keys() {
		v := strings.TrimSpace(p.GetString(k, ""))
		if k == "" || v == "" {
			continue
		}
		entries = append(entries, Entry{Candidate: strings.TrimSpace(k), Version: v})
	}
	return entries, nil
}

// WriteRC replaces the .sdkmanrc of dir with the header and entries.
func WriteRC(dir string, entries []Entry) error {
	lines := append([]string{}, rcHeader...)
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	path := RCPath(dir)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// InitRC creates an .sdkmanrc pinning java to javaVersion.
func InitRC(dir, javaVersion string) error {
	if _, err := os.Stat(RCPath(dir)); err == nil {
		return ErrRCExists
	}
	return WriteRC(dir, []Entry{{Candidate: "java", Version: javaVersion}})
}

// UpdateRC sets candidate to version in the .sdkmanrc of dir, creating the
// file if needed. Other lines, comments included, are kept as they are.
func UpdateRC(dir, candidate, version string) error {
	path := RCPath(dir)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return WriteRC(dir, []Entry{{Candidate: candidate, Version: version}})
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	line := Entry{Candidate: candidate, Version: version}.String()
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	replaced := false
	for i, l := range lines {
		key, _, ok := strings.Cut(l, "=")
		if ok && strings.TrimSpace(key) == candidate && !strings.HasPrefix(strings.TrimSpace(l), "#") {
			lines[i] = line
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, line)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// InitEnvrc adds hook to the .envrc of dir unless it is already there.
// It reports whether the file changed.
func InitEnvrc(dir, hook string) (bool, error) {
	path := filepath.Join(dir, EnvrcFile)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "failed to read %s", path)
	}
	text := string(data)
	if strings.Contains(text, hook) {
		return false, nil
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	text += hook + "\n"
	if err := os.WriteFile(path, []byte(text), fsutil.FileModeDefault); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", path)
	}
	return true, nil
}
