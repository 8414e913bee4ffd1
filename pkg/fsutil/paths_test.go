package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir(t *testing.T) {
	userConfig, err := os.UserConfigDir()
	require.NoError(t, err)
	configDir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userConfig, "wukong"), configDir)
}

func TestExpandHome(t *testing.T) {
	home := HomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.sdkman", filepath.Join(home, ".sdkman")},
		{"/opt/sdkman", "/opt/sdkman"},
		{"relative/~", "relative/~"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
