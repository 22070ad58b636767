package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load resolves configuration from every layer. fs receives the global flags
// and args are parsed with it; callers read fs.Args() for the subcommand.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	// Flags are parsed first so -config can pick the file, but applied last.
	fv, err := parseFlags(fs, args)
	if err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := &Config{}
	sources := make(map[string]ConfigSource)
	setDefaults(cfg)
	for _, key := range Fields() {
		sources[key] = SourceDefault
	}

	files, err := configFiles(fv.configFile)
	if err != nil {
		return nil, err
	}
	var loaded []string
	for _, f := range files {
		if err := loadConfigFile(cfg, f.path, sources, f.source); err != nil {
			return nil, err
		}
		loaded = append(loaded, f.path)
	}

	loadFromEnv(cfg, sources)
	fv.apply(cfg, sources)

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ConfigWithSources{Config: cfg, Sources: sources, Files: loaded}, nil
}

type configFile struct {
	path   string
	source ConfigSource
}

// configFiles lists the files to read in order. An explicit path from the
// flag or TASKER_CONFIG must exist.
func configFiles(explicit string) ([]configFile, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}
	if explicit != "" {
		path := expandPath(explicit)
		if _, err := os.Stat(path); err != nil {
			return nil, &FileError{Path: path, Err: err}
		}
		return []configFile{{path: path, source: SourceFile}}, nil
	}

	var files []configFile
	if p := findUserConfigFile(); p != "" {
		files = append(files, configFile{path: p, source: SourceUserFile})
	}
	if p := findProjectConfigFile(); p != "" {
		files = append(files, configFile{path: p, source: SourceProjFile})
	}
	return files, nil
}

// loadConfigFile decodes the TOML file at path over cfg. Keys present in the
// file are attributed to source. Unknown keys are rejected.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return &FileError{Path: path, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	for _, key := range Fields() {
		if md.IsDefined(key) {
			sources[key] = source
		}
	}
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StorageType = DefaultStorageType
	cfg.StorageFile = DefaultStorageFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// finalizeConfig normalizes names and resolves the storage path against the
// project root.
func finalizeConfig(cfg *Config) error {
	cfg.StorageType = strings.ToLower(strings.TrimSpace(cfg.StorageType))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if strings.TrimSpace(cfg.StorageFile) == "" {
		return nil
	}
	cfg.StorageFile = expandPath(cfg.StorageFile)
	if !filepath.IsAbs(cfg.StorageFile) {
		cfg.StorageFile = filepath.Join(cfg.ProjectRoot, cfg.StorageFile)
	}
	return nil
}

// ErrConfigExists is returned by WriteExample when the target already exists.
var ErrConfigExists = errors.New("config file already exists")

// WriteExample writes ExampleConfig to path, creating parent directories.
// An existing file is only replaced when force is set.
func WriteExample(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return &FileError{Path: path, Err: ErrConfigExists}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &FileError{Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, []byte(ExampleConfig()), 0o644); err != nil {
		return &FileError{Path: path, Err: err}
	}
	return nil
}
