// Package config provides configuration management for wukong.
// It loads settings from a YAML file, fills in defaults, overlays the
// SDKMAN_DIR, JBANG_DIR and ONEIO_ACCEPT_INVALID_CERTS environment variables
// and validates the result.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
	wkhttp "github.com/linux-china/wukong/pkg/http"
	"github.com/linux-china/wukong/pkg/platform"
	"github.com/linux-china/wukong/pkg/resolver"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// PlatformConfig overrides platform detection.
type PlatformConfig struct {
	// OS overrides the target operating system ("linux", "darwin", "windows").
	OS string `yaml:"os,omitempty"`
	// Arch overrides the target architecture ("amd64", "arm64").
	Arch string `yaml:"arch,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Store roots
	SDKMANDir string `yaml:"sdkman_dir,omitempty"`
	JBangDir  string `yaml:"jbang_dir,omitempty"`
	M2Dir     string `yaml:"m2_dir,omitempty"`
	HooksDir  string `yaml:"hooks_dir,omitempty"`

	// Network settings
	HTTPTimeout        time.Duration `yaml:"http_timeout"`
	RetryMax           int           `yaml:"retry_max"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
	UserAgent          string        `yaml:"user_agent,omitempty"`

	// Providers
	DiscoURL  string `yaml:"disco_url,omitempty"`
	BrokerURL string `yaml:"broker_url,omitempty"`
	Distro    string `yaml:"distro,omitempty"`

	// Platform settings
	Platform PlatformConfig `yaml:"platform,omitempty"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json, pretty
	ColorOutput  bool   `yaml:"color_output"`
	LogLevel     string `yaml:"log_level"` // debug, info, warn, error
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default whole-request timeout. Zero leaves
	// downloads unbounded; stalled servers are caught by the transport's
	// response header timeout instead.
	DefaultHTTPTimeout time.Duration = 0

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// Environment variables overlaid on the file settings.
const (
	EnvSDKMANDir         = "SDKMAN_DIR"
	EnvJBangDir          = "JBANG_DIR"
	EnvInsecureSkipCerts = "ONEIO_ACCEPT_INVALID_CERTS"
	EnvLogLevel          = "WUKONG_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	home := fsutil.HomeDir()
	return &Config{
		Settings: Settings{
			SDKMANDir:    filepath.Join(home, ".sdkman"),
			JBangDir:     filepath.Join(home, ".jbang"),
			M2Dir:        filepath.Join(home, ".m2"),
			HooksDir:     defaultHooksDir(),
			HTTPTimeout:  DefaultHTTPTimeout,
			UserAgent:    wkhttp.DefaultUserAgent,
			DiscoURL:     resolver.DefaultDiscoURL,
			BrokerURL:    resolver.DefaultBrokerURL,
			Distro:       resolver.DefaultDistro,
			OutputFormat: "text",
			ColorOutput:  true,
			LogLevel:     "info",
		},
	}
}

func defaultHooksDir() string {
	dir, err := fsutil.GetConfigDir()
	if err != nil {
		return filepath.Join(fsutil.HomeDir(), ".wukong", "hooks")
	}
	return filepath.Join(dir, "hooks")
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// ApplyEnv overlays the environment variables on c and validates the result.
// The process environment is only read, never modified.
func (c *Config) ApplyEnv() error {
	v := viper.New()
	bindings := map[string]string{
		"sdkman_dir":           EnvSDKMANDir,
		"jbang_dir":            EnvJBangDir,
		"insecure_skip_verify": EnvInsecureSkipCerts,
		"log_level":            EnvLogLevel,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return errors.Wrapf(err, "failed to bind %s", env)
		}
	}

	if v.IsSet("sdkman_dir") {
		c.Settings.SDKMANDir = fsutil.ExpandHome(v.GetString("sdkman_dir"))
	}
	if v.IsSet("jbang_dir") {
		c.Settings.JBangDir = fsutil.ExpandHome(v.GetString("jbang_dir"))
	}
	if v.IsSet("insecure_skip_verify") {
		c.Settings.InsecureSkipVerify = v.GetBool("insecure_skip_verify")
	}
	if v.IsSet("log_level") {
		c.Settings.LogLevel = strings.ToLower(v.GetString("log_level"))
	}
	return c.Validate()
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	if err := os.Chmod(absPath, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigFileChmod, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validatePlatform(c.Settings.Platform); err != nil {
		return err
	}
	return validateSettings(c.Settings)
}

func validatePlatform(p PlatformConfig) error {
	if p.OS != "" {
		switch platform.NormalizeOS(p.OS) {
		case platform.OSWindows, platform.OSLinux, platform.OSDarwin:
		default:
			return errors.ErrInvalidOSValueWithDetails(p.OS, platform.ValidOS())
		}
	}
	if p.Arch != "" {
		switch platform.NormalizeArch(p.Arch) {
		case platform.ArchAMD64, platform.ArchARM64:
		default:
			return errors.ErrInvalidArchValueWithDetails(p.Arch, platform.ValidArch())
		}
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errors.ErrHTTPTimeoutNegative
	}
	if s.RetryMax < 0 {
		return errors.ErrRetryMaxNegative
	}
	validFormats := map[string]bool{"text": true, "json": true, "pretty": true}
	if !validFormats[s.OutputFormat] {
		return errors.ErrInvalidOutputFormatWithDetails(s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// HTTPOptions returns the HTTP client options the settings describe.
func (c *Config) HTTPOptions() wkhttp.Options {
	return wkhttp.Options{
		Timeout:            c.Settings.HTTPTimeout,
		RetryMax:           c.Settings.RetryMax,
		InsecureSkipVerify: c.Settings.InsecureSkipVerify,
		UserAgent:          c.Settings.UserAgent,
	}
}

// Platform returns the detected platform with the configured overrides applied.
func (c *Config) Platform() platform.Platform {
	p := platform.Detect()
	if c.Settings.Platform.OS != "" {
		p.OS = platform.NormalizeOS(c.Settings.Platform.OS)
	}
	if c.Settings.Platform.Arch != "" {
		p.Arch = platform.NormalizeArch(c.Settings.Platform.Arch)
	}
	return p
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.SDKMANDir == "" {
		c.Settings.SDKMANDir = defaults.Settings.SDKMANDir
	}
	if c.Settings.JBangDir == "" {
		c.Settings.JBangDir = defaults.Settings.JBangDir
	}
	if c.Settings.M2Dir == "" {
		c.Settings.M2Dir = defaults.Settings.M2Dir
	}
	if c.Settings.HooksDir == "" {
		c.Settings.HooksDir = defaults.Settings.HooksDir
	}
	c.Settings.SDKMANDir = fsutil.ExpandHome(c.Settings.SDKMANDir)
	c.Settings.JBangDir = fsutil.ExpandHome(c.Settings.JBangDir)
	c.Settings.M2Dir = fsutil.ExpandHome(c.Settings.M2Dir)
	c.Settings.HooksDir = fsutil.ExpandHome(c.Settings.HooksDir)

	if c.Settings.UserAgent == "" {
		c.Settings.UserAgent = defaults.Settings.UserAgent
	}
	if c.Settings.DiscoURL == "" {
		c.Settings.DiscoURL = defaults.Settings.DiscoURL
	}
	if c.Settings.BrokerURL == "" {
		c.Settings.BrokerURL = defaults.Settings.BrokerURL
	}
	if c.Settings.Distro == "" {
		c.Settings.Distro = defaults.Settings.Distro
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}
