package config

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/fsutil"
)

// Keys returns the keys accepted by SetValue and GetValue.
func Keys() []string {
	keys := make([]string, 0, len(settingFields))
	for k := range settingFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// settingFields maps config keys to Settings field accessors.
var settingFields = map[string]func(s *Settings) reflect.Value{}

func init() {
	t := reflect.TypeOf(Settings{})
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := strings.Split(field.Tag.Get("yaml"), ",")[0]
		if key == "" || key == "-" {
			continue
		}
		idx := i
		if field.Type.Kind() == reflect.Struct {
			// nested platform settings are exposed as platform.os and platform.arch
			for j := 0; j < field.Type.NumField(); j++ {
				sub := strings.Split(field.Type.Field(j).Tag.Get("yaml"), ",")[0]
				subIdx := j
				settingFields[key+"."+sub] = func(s *Settings) reflect.Value {
					return reflect.ValueOf(s).Elem().Field(idx).Field(subIdx)
				}
			}
			continue
		}
		settingFields[key] = func(s *Settings) reflect.Value {
			return reflect.ValueOf(s).Elem().Field(idx)
		}
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

// SetValue sets a configuration value by key, e.g. "http_timeout" or
// "platform.arch", and validates the result.
func (c *Config) SetValue(key, value string) error {
	accessor, ok := settingFields[key]
	if !ok {
		return errors.ErrUnknownConfigKeyWithName(key)
	}
	updated := *c
	field := accessor(&updated.Settings)

	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidIntValue, "%s: %s", key, value)
		}
		field.SetInt(int64(d))
	case field.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidBoolValue, "%s: %s", key, value)
		}
		field.SetBool(b)
	case field.Kind() == reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidIntValue, "%s: %s", key, value)
		}
		field.SetInt(int64(n))
	default:
		if strings.HasSuffix(key, "_dir") {
			value = fsutil.ExpandHome(value)
		}
		field.SetString(value)
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}

// GetValue returns the value of key as a string.
func (c *Config) GetValue(key string) (string, error) {
	accessor, ok := settingFields[key]
	if !ok {
		return "", errors.ErrUnknownConfigKeyWithName(key)
	}
	return formatValue(accessor(&c.Settings)), nil
}

// ToMap returns every setting keyed by its config key.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(settingFields))
	for key, accessor := range settingFields {
		result[key] = formatValue(accessor(&c.Settings))
	}
	return result
}

func formatValue(v reflect.Value) string {
	switch {
	case v.Type() == durationType:
		return time.Duration(v.Int()).String()
	case v.Kind() == reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case v.Kind() == reflect.Int:
		return strconv.FormatInt(v.Int(), 10)
	default:
		return v.String()
	}
}
