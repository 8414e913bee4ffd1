// Package shellenv renders the shell exports that put installed candidates on
// PATH, and manages the per-project .sdkmanrc file.
package shellenv

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/linux-china/wukong/pkg/store"
)

// Script is a list of POSIX shell lines meant to be eval'd by the caller.
type Script struct {
	Lines []string
	// Missing lists candidates that were requested but are not installed.
	Missing []store.Candidate
}

// HomeVar returns the environment variable holding the home of candidate,
// e.g. JAVA_HOME.
func HomeVar(candidate string) string {
	return strings.ToUpper(strings.ReplaceAll(candidate, "-", "_")) + "_HOME"
}

// Export appends an export of name with a shell-quoted value.
func (s *Script) Export(name, value string) error {
	quoted, err := syntax.Quote(value, syntax.LangBash)
	if err != nil {
		return fmt.Errorf("cannot quote %s: %w", name, err)
	}
	s.Lines = append(s.Lines, fmt.Sprintf("export %s=%s", name, quoted))
	return nil
}

// PrependPath appends an export placing dirs in front of the existing PATH.
// Nothing is written when dirs is empty.
func (s *Script) PrependPath(dirs []string) error {
	if len(dirs) == 0 {
		return nil
	}
	quoted, err := syntax.Quote(strings.Join(dirs, ":"), syntax.LangBash)
	if err != nil {
		return fmt.Errorf("cannot quote PATH: %w", err)
	}
	s.Lines = append(s.Lines, fmt.Sprintf(`export PATH=%s:"$PATH"`, quoted))
	return nil
}

// Comment appends a shell comment.
func (s *Script) Comment(text string) {
	s.Lines = append(s.Lines, "# "+text)
}

func (s *Script) String() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return strings.Join(s.Lines, "\n") + "\n"
}
