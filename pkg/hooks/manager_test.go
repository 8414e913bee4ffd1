package hooks_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/linux-china/wukong/pkg/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddHook(t *testing.T) {
	manager := hooks.NewHookManager()

	tests := []struct {
		name        string
		hook        hooks.Hook
		expectedErr error
	}{
		{name: "valid hook", hook: hooks.Hook{Type: hooks.PostInstall, Content: `// ok`}},
		{name: "empty hook type", hook: hooks.Hook{Content: "x"}, expectedErr: hooks.ErrHookTypeEmpty},
		{name: "unknown hook type", hook: hooks.Hook{Type: "pre-install", Content: "x"}, expectedErr: hooks.ErrHookExecution},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := manager.AddHook(tc.hook)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, manager.HasHook(tc.hook.Type))
		})
	}

	require.NoError(t, manager.RemoveHook(hooks.PostInstall))
	assert.False(t, manager.HasHook(hooks.PostInstall))
}

func TestLoadHooksFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post-install.tengo"), []byte(`err = candidate == "java" ? "" : "wrong candidate"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.tengo"), []byte(`x := 1`), 0o644))

	manager := hooks.NewHookManager()
	require.NoError(t, hooks.LoadHooksFromDir(manager, dir))
	assert.True(t, manager.HasHook(hooks.PostInstall))
	assert.False(t, manager.HasHook(hooks.PreUninstall))

	err := manager.Execute(context.Background(), hooks.PostInstall, hooks.HookContext{Candidate: "java"})
	assert.NoError(t, err)
	err = manager.Execute(context.Background(), hooks.PostInstall, hooks.HookContext{Candidate: "maven"})
	assert.ErrorIs(t, err, hooks.ErrHookScript)

	require.NoError(t, hooks.LoadHooksFromDir(manager, filepath.Join(dir, "missing")))
	require.NoError(t, hooks.LoadHooksFromDir(manager, ""))
}

func TestHookTemplate(t *testing.T) {
	tests := []struct {
		hookType hooks.HookType
		expected string
	}{
		{hooks.PostInstall, "Post-install hook"},
		{hooks.PreUninstall, "Pre-uninstall hook"},
		{hooks.PostUninstall, "Post-uninstall hook"},
		{hooks.PostDefault, "Post-default hook"},
		{hooks.HookType("unknown"), "Unknown hook type"},
	}
	for _, tc := range tests {
		t.Run(string(tc.hookType), func(t *testing.T) {
			assert.Contains(t, hooks.HookTemplate(tc.hookType), tc.expected)
		})
	}
	assert.Equal(t, filepath.Join("/h", "post-install.tengo"), hooks.HookPath("/h", hooks.PostInstall))
}
