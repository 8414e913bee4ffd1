// Package toolchain registers JDK homes in a Maven toolchains.xml file.
package toolchain

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
)

// FileName is the name of the Maven toolchains file inside ~/.m2.
const FileName = "toolchains.xml"

// TypeJDK is the toolchain type managed by the Registrar.
const TypeJDK = "jdk"

// Entry is one jdk toolchain.
type Entry struct {
	Type    string  `json:"type"`
	Version string  `json:"version"`
	Vendor  *string `json:"vendor,omitempty"`
	JDKHome string  `json:"jdkHome"`
}

// VendorString returns the vendor or "" when unset.
func (e Entry) VendorString() string {
	if e.Vendor == nil {
		return ""
	}
	return *e.Vendor
}

// Registrar edits the toolchains file at Path. Every mutation reads, changes
// and rewrites the whole document.
type Registrar struct {
	Path string
}

// NewRegistrar creates a Registrar for <m2Dir>/toolchains.xml.
func NewRegistrar(m2Dir string) *Registrar {
	return &Registrar{Path: filepath.Join(m2Dir, FileName)}
}

// List returns the jdk toolchains that declare a jdkHome. Homes that no longer
// exist are included. A missing file yields no entries.
func (r *Registrar) List() ([]Entry, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, tc := range doc.Toolchains {
		if tc.Type != TypeJDK {
			continue
		}
		home, _ := tc.Configuration.get("jdkHome")
		if home == "" {
			continue
		}
		version, _ := tc.Provides.get("version")
		entries = append(entries, Entry{
			Type:    tc.Type,
			Version: version,
			Vendor:  vendorOf(tc),
			JDKHome: home,
		})
	}
	return entries, nil
}

// Add registers jdkHome for (version, vendor). An existing entry with the same
// version and vendor gets its jdkHome updated instead of being duplicated.
// added reports whether a new entry was appended.
func (r *Registrar) Add(version string, vendor *string, jdkHome string) (added bool, err error) {
	if version == "" || jdkHome == "" {
		return false, fmt.Errorf("version and jdkHome are required: %w", errors.ErrInvalidPath)
	}
	doc, err := r.load()
	if err != nil {
		return false, err
	}

	if tc := doc.find(version, vendor); tc != nil {
		if tc.Configuration == nil {
			tc.Configuration = &fieldSet{}
		}
		tc.Configuration.set("jdkHome", jdkHome)
	} else {
		provides := &fieldSet{}
		provides.set("version", version)
		if vendor != nil {
			provides.set("vendor", *vendor)
		}
		configuration := &fieldSet{}
		configuration.set("jdkHome", jdkHome)
		doc.Toolchains = append(doc.Toolchains, &toolchain{Type: TypeJDK, Provides: provides, Configuration: configuration})
		added = true
	}

	if err := r.save(doc); err != nil {
		return false, err
	}
	logger.Debug("Registered toolchain", logger.Fields{"version": version, "home": jdkHome, "file": r.Path})
	return added, nil
}

// Remove deletes the first jdk toolchain matching version and vendor. A nil
// vendor only matches entries without a vendor.
func (r *Registrar) Remove(version string, vendor *string) (bool, error) {
	doc, err := r.load()
	if err != nil {
		return false, err
	}
	for i, tc := range doc.Toolchains {
		if matches(tc, version, vendor) {
			doc.Toolchains = append(doc.Toolchains[:i], doc.Toolchains[i+1:]...)
			return true, r.save(doc)
		}
	}
	return false, nil
}

func (d *document) find(version string, vendor *string) *toolchain {
	for _, tc := range d.Toolchains {
		if matches(tc, version, vendor) {
			return tc
		}
	}
	return nil
}

func matches(tc *toolchain, version string, vendor *string) bool {
	if tc.Type != TypeJDK {
		return false
	}
	if v, _ := tc.Provides.get("version"); v != version {
		return false
	}
	have := vendorOf(tc)
	if vendor == nil || have == nil {
		return vendor == nil && have == nil
	}
	return *vendor == *have
}

func vendorOf(tc *toolchain) *string {
	v, ok := tc.Provides.get("vendor")
	if !ok || v == "" {
		return nil
	}
	return &v
}

func (r *Registrar) load() (*document, error) {
	data, err := os.ReadFile(r.Path)
	if os.IsNotExist(err) {
		return newDocument(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", r.Path)
	}
	doc := &document{}
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", r.Path)
	}
	doc.normalize()
	return doc, nil
}

func (r *Registrar) save(doc *document) error {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode toolchains")
	}
	if err := fsutil.EnsureFileDir(r.Path); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(r.Path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.Path), ".toolchains-*.xml")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary toolchains file")
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	content := append([]byte(xml.Header), out...)
	content = append(content, '\n')
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write toolchains")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close toolchains")
	}
	if err := os.Chmod(tmpPath, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(err, "failed to set toolchains permissions")
	}
	return errors.Wrapf(os.Rename(tmpPath, r.Path), "failed to replace %s", r.Path)
}
