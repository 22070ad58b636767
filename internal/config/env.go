package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvConfig        = "TASKER_CONFIG"
	EnvStorageType   = "TASKER_STORAGE_TYPE"
	EnvStorageFile   = "TASKER_STORAGE_FILE"
	EnvLogLevel      = "TASKER_LOG_LEVEL"
	EnvLogFormat     = "TASKER_LOG_FORMAT"
	EnvLogTimestamps = "TASKER_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKER_LOG_CALLER"
)

// loadFromEnv overrides cfg from TASKER_* variables. Empty variables are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	str := func(env, key string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[key] = SourceEnv
		}
	}
	boolean := func(env, key string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			sources[key] = SourceEnv
		}
	}

	str(EnvStorageType, "storage_type", &cfg.StorageType)
	str(EnvStorageFile, "storage_file", &cfg.StorageFile)
	str(EnvLogLevel, "log_level", &cfg.LogLevel)
	str(EnvLogFormat, "log_format", &cfg.LogFormat)
	boolean(EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps)
	boolean(EnvLogCaller, "log_caller", &cfg.LogCaller)
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
