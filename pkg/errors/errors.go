// Package errors defines the error taxonomy shared by the SDK acquisition engine.
// Callers match the sentinels with the standard library's errors.Is; the helpers
// in this package only add context while preserving the wrapped chain.
package errors

import (
	"errors"
	"fmt"
)

// Engine errors. Every failure surfaced by an install, uninstall or pointer
// switch wraps exactly one of these.
var (
	// ErrUnsupportedPlatform is returned before any network call when the
	// detected OS/architecture pair has no known vendor parameters.
	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")

	// ErrResolution is returned when a provider did not yield a usable download URL.
	ErrResolution = fmt.Errorf("failed to resolve download url")

	// ErrDownload is returned on transport failures and non-success HTTP statuses.
	ErrDownload = fmt.Errorf("download failed")

	// ErrExtraction is returned for malformed archives and I/O failures while unpacking.
	ErrExtraction = fmt.Errorf("extraction failed")

	// ErrNotInstalled is returned when an operation requires an installed candidate.
	ErrNotInstalled = fmt.Errorf("candidate is not installed")

	// ErrInvalidPath is returned when a local source path does not exist.
	ErrInvalidPath = fmt.Errorf("invalid path")
)

// Config errors.
var (
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileChmod   = fmt.Errorf("failed to set config file permissions")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config to YAML")

	// ErrConfigFileExists is returned by `config init` without --force.
	ErrConfigFileExists = fmt.Errorf("configuration file already exists (use --force to overwrite)")

	ErrInvalidOSValue      = fmt.Errorf("invalid OS value")
	ErrInvalidArchValue    = fmt.Errorf("invalid architecture value")
	ErrHTTPTimeoutNegative = fmt.Errorf("http_timeout cannot be negative")
	ErrRetryMaxNegative    = fmt.Errorf("retry_max cannot be negative")
	ErrInvalidOutputFormat = fmt.Errorf("invalid output format")
	ErrInvalidLogLevel     = fmt.Errorf("invalid log level")
	ErrInvalidBoolValue    = fmt.Errorf("invalid boolean value")
	ErrInvalidIntValue     = fmt.Errorf("invalid integer value")
	ErrUnknownConfigKey    = fmt.Errorf("unknown configuration key")
)

// CandidateError attaches the candidate an operation was working on to an error.
type CandidateError struct {
	Op      string
	Name    string
	Version string
	Err     error
}

func (e *CandidateError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Name, e.Version, e.Err)
}

func (e *CandidateError) Unwrap() error { return e.Err }

// NewCandidateError wraps err with the candidate it relates to. A nil err yields nil.
func NewCandidateError(op, name, version string, err error) error {
	if err == nil {
		return nil
	}
	return &CandidateError{Op: op, Name: name, Version: version, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Classify returns the engine sentinel that err wraps, or nil when it wraps none.
func Classify(err error) error {
	for _, sentinel := range []error{
		ErrUnsupportedPlatform,
		ErrResolution,
		ErrDownload,
		ErrExtraction,
		ErrNotInstalled,
		ErrInvalidPath,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

// ErrInvalidOSValueWithDetails reports an invalid OS override together with the accepted values.
func ErrInvalidOSValueWithDetails(value string, validOS []string) error {
	return fmt.Errorf("%w: %s. Valid values are: %v", ErrInvalidOSValue, value, validOS)
}

// ErrInvalidArchValueWithDetails reports an invalid architecture override together with the accepted values.
func ErrInvalidArchValueWithDetails(value string, validArch []string) error {
	return fmt.Errorf("%w: %s. Valid values are: %v", ErrInvalidArchValue, value, validArch)
}

// ErrInvalidOutputFormatWithDetails reports an unknown log output format.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: text, json, pretty", ErrInvalidOutputFormat, format)
}

// ErrInvalidLogLevelWithDetails reports an unknown log level.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", ErrInvalidLogLevel, level)
}

// ErrUnknownConfigKeyWithName reports a config key that `config get/set` does not know.
func ErrUnknownConfigKeyWithName(key string) error {
	return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
}
