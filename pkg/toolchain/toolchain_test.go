package toolchain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

const existingToolchains = `<?xml version="1.0" encoding="UTF-8"?>
<toolchains xmlns="http://maven.apache.org/TOOLCHAINS/1.1.0"
            xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
            xsi:schemaLocation="http://maven.apache.org/TOOLCHAINS/1.1.0 https://maven.apache.org/xsd/toolchains-1.1.0.xsd">
  <toolchain>
    <type>jdk</type>
    <provides>
      <version>17</version>
      <vendor>temurin</vendor>
      <id>jdk17</id>
    </provides>
    <configuration>
      <jdkHome>/opt/jdk-17</jdkHome>
      <extra><nested a="1">x</nested></extra>
    </configuration>
  </toolchain>
  <toolchain>
    <type>protobuf</type>
    <provides>
      <version>3.25</version>
    </provides>
    <configuration>
      <protocExecutable>/usr/bin/protoc</protocExecutable>
    </configuration>
  </toolchain>
  <toolchain>
    <type>jdk</type>
    <provides>
      <version>11</version>
    </provides>
  </toolchain>
</toolchains>
`

func TestRegistrar_AddCreatesFile(t *testing.T) {
	r := NewRegistrar(filepath.Join(t.TempDir(), ".m2"))

	entries, err := r.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	added, err := r.Add("21", nil, "/opt/jdk-21")
	require.NoError(t, err)
	assert.True(t, added)

	data, err := os.ReadFile(r.Path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "<?xml"))
	assert.Contains(t, content, `xmlns="http://maven.apache.org/TOOLCHAINS/1.1.0"`)
	assert.Contains(t, content, "<jdkHome>/opt/jdk-21</jdkHome>")

	entries, err = r.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Type: "jdk", Version: "21", JDKHome: "/opt/jdk-21"}, entries[0])
}

func TestRegistrar_AddIsIdempotent(t *testing.T) {
	r := NewRegistrar(t.TempDir())

	added, err := r.Add("21", strPtr("temurin"), "/opt/a")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = r.Add("21", strPtr("temurin"), "/opt/b")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = r.Add("21", nil, "/opt/c")
	require.NoError(t, err)
	assert.True(t, added, "an unset vendor is a different entry")

	entries, err := r.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "/opt/b", entries[0].JDKHome)
	assert.Equal(t, "temurin", entries[0].VendorString())
	assert.Equal(t, "/opt/c", entries[1].JDKHome)
}

func TestRegistrar_PreservesUnknownContent(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistrar(dir)
	require.NoError(t, os.WriteFile(r.Path, []byte(existingToolchains), 0o644))

	entries, err := r.List()
	require.NoError(t, err)
	require.Len(t, entries, 1, "non-jdk toolchains and entries without jdkHome are not listed")
	assert.Equal(t, "17", entries[0].Version)
	assert.Equal(t, "temurin", entries[0].VendorString())

	_, err = r.Add("21", strPtr("zulu"), "/opt/zulu-21")
	require.NoError(t, err)

	data, err := os.ReadFile(r.Path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "<id>jdk17</id>")
	assert.Contains(t, content, `<nested a="1">x</nested>`)
	assert.Contains(t, content, "<protocExecutable>/usr/bin/protoc</protocExecutable>")
	assert.Contains(t, content, `xsi:schemaLocation=`)
	assert.Contains(t, content, `xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`)
	assert.NotContains(t, content, "_xmlns")
	assert.Equal(t, 1, strings.Count(content, `xmlns="http://maven.apache.org/TOOLCHAINS/1.1.0"`))

	// a second rewrite is stable
	_, err = r.Add("21", strPtr("zulu"), "/opt/zulu-21")
	require.NoError(t, err)
	again, err := os.ReadFile(r.Path)
	require.NoError(t, err)
	assert.Equal(t, content, string(again))
}

func TestRegistrar_Remove(t *testing.T) {
	r := NewRegistrar(t.TempDir())
	require.NoError(t, os.WriteFile(r.Path, []byte(existingToolchains), 0o644))

	removed, err := r.Remove("17", nil)
	require.NoError(t, err)
	assert.False(t, removed, "a nil vendor does not match a vendored entry")

	removed, err = r.Remove("17", strPtr("zulu"))
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = r.Remove("17", strPtr("temurin"))
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.Remove("11", nil)
	require.NoError(t, err)
	assert.True(t, removed)

	entries, err := r.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	data, err := os.ReadFile(r.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<type>protobuf</type>")
}

func TestRegistrar_Errors(t *testing.T) {
	r := NewRegistrar(t.TempDir())
	_, err := r.Add("", nil, "/x")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(r.Path, []byte("<toolchains><toolchain>"), 0o644))
	_, err = r.List()
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	java := "java"
	if filepath.Separator == '\\' {
		java = "java.exe"
	}
	mk := func(path string) {
		require.NoError(t, os.MkdirAll(filepath.Join(path, "bin"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(path, "bin", java), []byte(""), 0o755))
	}
	mk(filepath.Join(root, "sys", "java-17-openjdk"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sys", "java-17-openjdk", "release"), []byte(`JAVA_VERSION="17.0.9"`+"\nIMPLEMENTOR=\"Red Hat, Inc.\"\n"), 0o644))
	mk(filepath.Join(root, "mac", "zulu-21.jdk", "Contents", "Home"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sys", "not-a-jdk"), 0o755))

	found := Discover([]Source{
		{Name: "system", Dir: filepath.Join(root, "sys")},
		{Name: "bundle", Dir: filepath.Join(root, "mac")},
		{Name: "missing", Dir: filepath.Join(root, "nope")},
	})
	require.Len(t, found, 2)
	assert.Equal(t, JDK{Source: "system", Home: filepath.Join(root, "sys", "java-17-openjdk"), Version: "17.0.9", Vendor: "Red Hat, Inc."}, found[0])
	assert.Equal(t, filepath.Join(root, "mac", "zulu-21.jdk", "Contents", "Home"), found[1].Home)
	assert.Equal(t, "zulu-21.jdk", found[1].Version)
}

func TestSystemSources(t *testing.T) {
	assert.Equal(t, "/usr/lib/jvm", SystemSources("linux", "/home/u")[0].Dir)
	assert.Len(t, SystemSources("darwin", "/Users/u"), 2)
	assert.Equal(t, filepath.Join("/h", ".gradle", "jdks"), GradleSource("/h").Dir)
}
