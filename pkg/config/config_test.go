package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
	"github.com/linux-china/wukong/pkg/resolver"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, DefaultHTTPTimeout, cfg.Settings.HTTPTimeout)
	assert.Equal(t, 0, cfg.Settings.RetryMax)
	assert.Equal(t, resolver.DefaultDiscoURL, cfg.Settings.DiscoURL)
	assert.Equal(t, resolver.DefaultBrokerURL, cfg.Settings.BrokerURL)
	assert.True(t, strings.HasSuffix(cfg.Settings.SDKMANDir, ".sdkman"))
	assert.True(t, strings.HasSuffix(cfg.Settings.JBangDir, ".jbang"))
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `settings:
  sdkman_dir: /opt/sdkman
  log_level: debug
  http_timeout: 30s
  retry_max: 2
  platform:
    os: linux
    arch: arm64`

	err := os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/opt/sdkman", cfg.Settings.SDKMANDir)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, 2, cfg.Settings.RetryMax)
	assert.Equal(t, "text", cfg.Settings.OutputFormat, "defaults fill missing values")
	assert.Equal(t, "linux/arm64", cfg.Platform().String())

	opts := cfg.HTTPOptions()
	assert.Equal(t, 30*time.Second, opts.Timeout)
	assert.Equal(t, 2, opts.RetryMax)
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader_ZeroTimeoutMeansNone(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("settings:\n  http_timeout: 0s\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Settings.HTTPTimeout)
	assert.Zero(t, cfg.HTTPOptions().Timeout)

	cfg, err = LoadConfigFromReader(strings.NewReader("settings:\n  log_level: warn\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Settings.HTTPTimeout, "downloads are unbounded unless configured")
}

func TestLoadConfigFromReader_Invalid(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings: ["))
	assert.ErrorIs(t, err, errors.ErrConfigParse)

	_, err = LoadConfigFromReader(strings.NewReader("settings:\n  retry_max: -1\n"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Settings.Platform.OS = "linux"
	cfg.Settings.Platform.Arch = "amd64"

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateConfig(t *testing.T) {
	valid := func(mutate func(*Settings)) *Config {
		cfg := DefaultConfig()
		mutate(&cfg.Settings)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{name: "valid config", config: DefaultConfig()},
		{name: "invalid OS", config: valid(func(s *Settings) { s.Platform.OS = "plan9" }), wantErr: errors.ErrInvalidOSValue},
		{name: "invalid Arch", config: valid(func(s *Settings) { s.Platform.Arch = "mips" }), wantErr: errors.ErrInvalidArchValue},
		{name: "arch alias", config: valid(func(s *Settings) { s.Platform.Arch = "x86_64" })},
		{name: "negative timeout", config: valid(func(s *Settings) { s.HTTPTimeout = -time.Second }), wantErr: errors.ErrHTTPTimeoutNegative},
		{name: "negative retries", config: valid(func(s *Settings) { s.RetryMax = -1 }), wantErr: errors.ErrRetryMaxNegative},
		{name: "bad format", config: valid(func(s *Settings) { s.OutputFormat = "yaml" }), wantErr: errors.ErrInvalidOutputFormat},
		{name: "bad level", config: valid(func(s *Settings) { s.LogLevel = "trace" }), wantErr: errors.ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSDKMANDir, "/env/sdkman")
	t.Setenv(EnvJBangDir, "/env/jbang")
	t.Setenv(EnvInsecureSkipCerts, "true")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "/env/sdkman", cfg.Settings.SDKMANDir)
	assert.Equal(t, "/env/jbang", cfg.Settings.JBangDir)
	assert.True(t, cfg.Settings.InsecureSkipVerify)
	assert.True(t, cfg.HTTPOptions().InsecureSkipVerify)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
}

func TestApplyEnv_Unset(t *testing.T) {
	t.Setenv(EnvSDKMANDir, "")
	t.Setenv(EnvInsecureSkipCerts, "")

	cfg := DefaultConfig()
	want := cfg.Settings.SDKMANDir
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, want, cfg.Settings.SDKMANDir)
	assert.False(t, cfg.Settings.InsecureSkipVerify)
}
