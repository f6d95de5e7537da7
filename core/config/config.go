// File: config.go
// Title: Configuration Loading
// Description: Implements configuration loading for the engine tooling.
//              Supports TOML and YAML files with format auto-detection by
//              extension, a defaults map merged underneath file values,
//              environment-variable overrides, and typed dotted-key
//              getters (for example "table.max_computed_rows").
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-07
// Modified: 2026-08-07
//
// Change History:
// - 2026-08-07 v0.1.0: Initial implementation

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	tlberror "github.com/campfirium/obsidian-tile-line-base-sub002/core/error"
)

// Format identifies a configuration file format.
type Format int

const (
	// FormatAuto detects the format from the file extension.
	FormatAuto Format = iota

	// FormatTOML parses the file as TOML.
	FormatTOML

	// FormatYAML parses the file as YAML.
	FormatYAML
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// LoadOptions configures loading behavior.
type LoadOptions struct {
	// Format forces a specific format instead of auto-detection.
	Format Format

	// EnvPrefix enables environment overrides: with prefix "TLB", the key
	// "log.level" is overridden by the variable TLB_LOG_LEVEL.
	EnvPrefix string

	// Defaults are merged underneath the file values.
	Defaults map[string]interface{}
}

// Config holds loaded configuration data and answers typed key lookups.
type Config struct {
	data      map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
}

// Load reads a configuration file with auto-detected format and no
// defaults or environment overrides.
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{})
}

// LoadWithOptions reads a configuration file according to the options.
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, tlberror.Wrap(err, "reading config file").
			WithCode(tlberror.CodeMissingConfig).
			WithDetail("path", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	data, usedFormat, err := parseContent(content, format)
	if err != nil {
		return nil, tlberror.Wrap(err, "parsing config file").
			WithCode(tlberror.CodeInvalidConfig).
			WithDetail("path", filePath)
	}

	if options.Defaults != nil {
		data = mergeDefaults(data, options.Defaults)
	}

	return &Config{
		data:      data,
		filePath:  filePath,
		format:    usedFormat,
		envPrefix: options.EnvPrefix,
	}, nil
}

// LoadFromString parses configuration from an in-memory string.
func LoadFromString(content string, format Format) (*Config, error) {
	data, usedFormat, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, tlberror.Wrap(err, "parsing config content").
			WithCode(tlberror.CodeInvalidConfig)
	}
	return &Config{data: data, format: usedFormat}, nil
}

// NewFromMap creates a Config backed directly by the given map. Used for
// defaults-only configurations when no file is present.
func NewFromMap(data map[string]interface{}) *Config {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Config{data: data}
}

// WithEnvPrefix returns the config with environment overrides enabled.
func (c *Config) WithEnvPrefix(prefix string) *Config {
	c.envPrefix = prefix
	return c
}

// detectFormat infers the format from the file extension.
func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// parseContent parses raw bytes in the requested format. FormatAuto tries
// TOML first, then YAML.
func parseContent(content []byte, format Format) (map[string]interface{}, Format, error) {
	switch format {
	case FormatTOML:
		data := make(map[string]interface{})
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, format, fmt.Errorf("invalid TOML: %w", err)
		}
		return data, FormatTOML, nil

	case FormatYAML:
		data := make(map[string]interface{})
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, format, fmt.Errorf("invalid YAML: %w", err)
		}
		return data, FormatYAML, nil

	default:
		data := make(map[string]interface{})
		if err := toml.Unmarshal(content, &data); err == nil {
			return data, FormatTOML, nil
		}
		data = make(map[string]interface{})
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, format, fmt.Errorf("content is neither valid TOML nor valid YAML: %w", err)
		}
		return data, FormatYAML, nil
	}
}

// mergeDefaults overlays data on top of defaults, recursing into nested
// maps so partial sections keep their unset defaults.
func mergeDefaults(data, defaults map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(defaults)+len(data))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range data {
		if nested, ok := v.(map[string]interface{}); ok {
			if defaultNested, ok := merged[k].(map[string]interface{}); ok {
				merged[k] = mergeDefaults(nested, defaultNested)
				continue
			}
		}
		merged[k] = v
	}
	return merged
}

// getValue resolves a dotted key against the nested data maps.
func (c *Config) getValue(key string) interface{} {
	parts := strings.Split(key, ".")
	var current interface{} = c.data

	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// getEnvValue returns the environment override for a key, if any.
func (c *Config) getEnvValue(key string) (string, bool) {
	if c.envPrefix == "" {
		return "", false
	}
	envKey := c.envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	value, ok := os.LookupEnv(envKey)
	return value, ok
}

// Has reports whether the key resolves to a value (environment overrides
// included).
func (c *Config) Has(key string) bool {
	if _, ok := c.getEnvValue(key); ok {
		return true
	}
	return c.getValue(key) != nil
}

// Set stores a value under a dotted key, creating nested maps as needed.
func (c *Config) Set(key string, value interface{}) {
	parts := strings.Split(key, ".")
	current := c.data

	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
			return
		}
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[part] = next
		}
		current = next
	}
}

// GetString returns the string value for a key, or the default.
func (c *Config) GetString(key string, defaultValue ...string) string {
	fallback := ""
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}

	if env, ok := c.getEnvValue(key); ok {
		return env
	}

	value := c.getValue(key)
	if value == nil {
		return fallback
	}

	switch v := value.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// GetInt returns the integer value for a key, or the default. String and
// float values are converted when the conversion is lossless.
func (c *Config) GetInt(key string, defaultValue ...int) int {
	fallback := 0
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}

	if env, ok := c.getEnvValue(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(env)); err == nil {
			return parsed
		}
		return fallback
	}

	switch v := c.getValue(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
		return fallback
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return fallback
	default:
		return fallback
	}
}

// GetBool returns the boolean value for a key, or the default.
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	fallback := false
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}

	if env, ok := c.getEnvValue(key); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(env)); err == nil {
			return parsed
		}
		return fallback
	}

	switch v := c.getValue(key).(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return fallback
	default:
		return fallback
	}
}

// GetFloat returns the float value for a key, or the default.
func (c *Config) GetFloat(key string, defaultValue ...float64) float64 {
	fallback := 0.0
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}

	if env, ok := c.getEnvValue(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(env), 64); err == nil {
			return parsed
		}
		return fallback
	}

	switch v := c.getValue(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return parsed
		}
		return fallback
	default:
		return fallback
	}
}

// GetStringSlice returns the string-slice value for a key, or the default.
// Environment overrides use comma separation.
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) []string {
	var fallback []string
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}

	if env, ok := c.getEnvValue(key); ok {
		parts := strings.Split(env, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}

	switch v := c.getValue(key).(type) {
	case []string:
		return v
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			result = append(result, fmt.Sprintf("%v", item))
		}
		return result
	default:
		return fallback
	}
}

// GetAll returns a copy of the top-level data map.
func (c *Config) GetAll() map[string]interface{} {
	copied := make(map[string]interface{}, len(c.data))
	for k, v := range c.data {
		copied[k] = v
	}
	return copied
}

// FilePath returns the path the configuration was loaded from, if any.
func (c *Config) FilePath() string {
	return c.filePath
}

// Format returns the format the configuration was parsed as.
func (c *Config) Format() Format {
	return c.format
}
