package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/errors"
)

// Current returns the version the current link of name points at. ok is
// false when no current version is set.
func (s *Store) Current(name string) (string, bool, error) {
	target, err := os.Readlink(s.layout.CurrentLink(name))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read current link of %s", name)
	}
	return filepath.Base(filepath.Clean(target)), true, nil
}

// SetCurrent points the current link of c.Name at c. The new link is created
// next to the old one and renamed over it, so readers never observe a
// missing link.
func (s *Store) SetCurrent(c Candidate) error {
	if err := c.validate(); err != nil {
		return err
	}
	if !s.Exists(c) {
		return errors.NewCandidateError("default", c.Name, c.Version, errors.ErrNotInstalled)
	}

	link := s.layout.CurrentLink(c.Name)
	tmp := fmt.Sprintf("%s.tmp-%d", link, os.Getpid())
	_ = os.Remove(tmp)
	if err := os.Symlink(s.Home(c), tmp); err != nil {
		return errors.NewCandidateError("default", c.Name, c.Version, err)
	}

	// a copied "current" directory cannot be replaced by rename
	if info, err := os.Lstat(link); err == nil && info.Mode()&os.ModeSymlink == 0 {
		if err := os.RemoveAll(link); err != nil {
			_ = os.Remove(tmp)
			return errors.NewCandidateError("default", c.Name, c.Version, err)
		}
	}
	if err := os.Rename(tmp, link); err != nil {
		_ = os.Remove(tmp)
		return errors.NewCandidateError("default", c.Name, c.Version, err)
	}

	logger.Debug("Switched current version", logger.Fields{"candidate": c.Name, "version": c.Version})
	return nil
}

// ClearCurrent removes the current link of name. A missing link is not an error.
func (s *Store) ClearCurrent(name string) error {
	link := s.layout.CurrentLink(name)
	info, err := os.Lstat(link)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", link)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		err = os.RemoveAll(link)
	} else {
		err = os.Remove(link)
	}
	return errors.Wrapf(err, "failed to remove %s", link)
}

// CurrentHome returns the CandidateHome the current link of name selects.
func (s *Store) CurrentHome(name string) (string, bool, error) {
	v, ok, err := s.Current(name)
	if err != nil || !ok {
		return "", ok, err
	}
	return s.Home(Candidate{Name: name, Version: v}), true, nil
}
