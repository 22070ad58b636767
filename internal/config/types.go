package config

import (
	"errors"
	"fmt"

	"github.com/nibzard/tasker-go/internal/storage"
)

// Default values.
const (
	DefaultStorageType = "json"
	DefaultStorageFile = "tasks"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"

	// FileName is the config file name looked up in each location.
	FileName = "tasker.toml"
)

// Config is the resolved tasker configuration.
type Config struct {
	// StorageType selects the backend: json or xml.
	StorageType string `toml:"storage_type"`

	// StorageFile is the storage path base. The backend's extension is
	// appended when it has none.
	StorageFile string `toml:"storage_file"`

	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `toml:"-"`
}

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user config"
	SourceProjFile ConfigSource = "project config"
	SourceFile     ConfigSource = "config file"
	SourceEnv      ConfigSource = "env"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources pairs a Config with the origin of each value.
type ConfigWithSources struct {
	*Config
	Sources map[string]ConfigSource
	Files   []string // config files that were read, in load order
}

// Validation reasons for logging keys.
var (
	ErrInvalidLogLevel  = errors.New("unknown log level (expected debug|info|warn|error|fatal)")
	ErrInvalidLogFormat = errors.New("unknown log format (expected text|json|logfmt)")
)

// FileError reports a config file that could not be read or decoded.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("config file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Kind returns the parsed storage backend kind.
func (c *Config) Kind() (storage.Kind, error) {
	return storage.ParseKind(c.StorageType)
}

// Fields returns the configurable keys in display order.
func Fields() []string {
	return []string{
		"storage_type",
		"storage_file",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Value returns the string form of the value stored under key.
func (c *Config) Value(key string) string {
	switch key {
	case "storage_type":
		return c.StorageType
	case "storage_file":
		return c.StorageFile
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	default:
		return ""
	}
}
