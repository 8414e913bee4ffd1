package shellenv

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
	"github.com/linux-china/wukong/pkg/store"
)

// JavaVersionFile is the jenv-style file naming the java version of a directory.
const JavaVersionFile = ".java-version"

// binOrHome returns home/bin when it exists, home otherwise.
func binOrHome(home string) string {
	if bin := filepath.Join(home, "bin"); fsutil.IsDir(bin) {
		return bin
	}
	return home
}

// Init exports <NAME>_HOME and PATH for every candidate that has a current version.
func Init(st *store.Store) (*Script, error) {
	names, err := st.Candidates()
	if err != nil {
		return nil, err
	}
	script := &Script{}
	var paths []string
	for _, name := range names {
		if _, ok, err := st.Current(name); err != nil || !ok {
			continue
		}
		link := st.Layout().CurrentLink(name)
		if err := script.Export(HomeVar(name), link); err != nil {
			return nil, err
		}
		paths = append(paths, binOrHome(link))
	}
	if err := script.PrependPath(paths); err != nil {
		return nil, err
	}
	return script, nil
}

// Use exports the home of one installed version for the current shell.
func Use(st *store.Store, c store.Candidate, command string) (*Script, error) {
	if !st.Exists(c) {
		return nil, errors.NewCandidateError("use", c.Name, c.Version, errors.ErrNotInstalled)
	}
	home := st.Home(c)
	script := &Script{}
	if err := script.PrependPath([]string{binOrHome(home)}); err != nil {
		return nil, err
	}
	if err := script.Export(HomeVar(c.Name), home); err != nil {
		return nil, err
	}
	script.Comment("Run this command to configure your shell:")
	script.Comment("eval $(" + command + ")")
	return script, nil
}

// Clear exports the default version of every entry, undoing a previous Use
// or Direnv in the current shell. Entries without a default are skipped.
func Clear(st *store.Store, entries []Entry) (*Script, error) {
	script := &Script{}
	var paths []string
	for _, e := range entries {
		home, ok, err := st.CurrentHome(e.Candidate)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := script.Export(HomeVar(e.Candidate), home); err != nil {
			return nil, err
		}
		paths = append(paths, binOrHome(home))
	}
	if err := script.PrependPath(paths); err != nil {
		return nil, err
	}
	return script, nil
}

// Direnv renders the environment of dir from its .sdkmanrc and .java-version
// files. A numeric java version is looked up in jdks first and then by prefix
// in st. Entries that are not installed end up in Script.Missing. jdks may be nil.
func Direnv(st, jdks *store.Store, dir string) (*Script, error) {
	script := &Script{}
	var paths []string
	javaVersion := ""

	add := func(c store.Candidate, home string) error {
		if err := script.Export(HomeVar(c.Name), home); err != nil {
			return err
		}
		if c.Name == "java" && strings.Contains(strings.ToLower(home), "graal") {
			if err := script.Export("GRAALVM_HOME", home); err != nil {
				return err
			}
		}
		paths = append(paths, binOrHome(home))
		return nil
	}

	entries, err := ReadRC(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, e := range entries {
		c := store.Candidate{Name: e.Candidate, Version: e.Version}
		home, ok := lookup(st, jdks, c)
		if !ok {
			script.Missing = append(script.Missing, c)
			continue
		}
		if err := add(c, home); err != nil {
			return nil, err
		}
		if c.Name == "java" {
			javaVersion = c.Version
		}
	}

	if javaVersion == "" {
		data, err := os.ReadFile(filepath.Join(dir, JavaVersionFile))
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read %s", JavaVersionFile)
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			c := store.Candidate{Name: "java", Version: v}
			if home, ok := lookup(st, jdks, c); ok {
				if err := add(c, home); err != nil {
					return nil, err
				}
				javaVersion = v
			} else {
				script.Missing = append(script.Missing, c)
			}
		}
	}

	if javaVersion != "" {
		if err := script.Export("JENV_VERSION", javaVersion); err != nil {
			return nil, err
		}
	}
	if err := script.PrependPath(paths); err != nil {
		return nil, err
	}
	return script, nil
}

func lookup(st, jdks *store.Store, c store.Candidate) (string, bool) {
	if st.Exists(c) {
		return st.Home(c), true
	}
	if c.Name != "java" {
		return "", false
	}
	if _, err := strconv.Atoi(c.Version); err != nil {
		return "", false
	}
	if jdks != nil {
		if jc := (store.Candidate{Name: "java", Version: c.Version}); jdks.Exists(jc) {
			return jdks.Home(jc), true
		}
	}
	if v, ok, err := st.FindVersion("java", c.Version); err == nil && ok {
		return st.Home(store.Candidate{Name: "java", Version: v}), true
	}
	return "", false
}
