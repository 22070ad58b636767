package config

import (
	"flag"
)

// flagValues holds the global flags after parsing. set records which flags
// appeared on the command line.
type flagValues struct {
	configFile  string
	storageType string
	storageFile string
	logLevel    string
	logFormat   string
	set         map[string]bool
}

// parseFlags registers the global flags on fs and parses args.
func parseFlags(fs *flag.FlagSet, args []string) (*flagValues, error) {
	if fs == nil {
		fs = flag.NewFlagSet("tasker", flag.ContinueOnError)
	}
	fv := &flagValues{set: make(map[string]bool)}
	fs.StringVar(&fv.configFile, "config", "", "Path to a config file (replaces user and project files)")
	fs.StringVar(&fv.storageType, "storage", "", "Storage backend (json|xml)")
	fs.StringVar(&fv.storageFile, "file", "", "Storage file path base; the backend extension is added when missing")
	fs.StringVar(&fv.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	fs.StringVar(&fv.logFormat, "log-format", "", "Log format (text|json|logfmt)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		fv.set[f.Name] = true
	})
	return fv, nil
}

// apply copies explicitly set flags onto cfg.
func (fv *flagValues) apply(cfg *Config, sources map[string]ConfigSource) {
	bindings := []struct {
		flag   string
		key    string
		value  string
		target *string
	}{
		{"storage", "storage_type", fv.storageType, &cfg.StorageType},
		{"file", "storage_file", fv.storageFile, &cfg.StorageFile},
		{"log-level", "log_level", fv.logLevel, &cfg.LogLevel},
		{"log-format", "log_format", fv.logFormat, &cfg.LogFormat},
	}
	for _, b := range bindings {
		if fv.set[b.flag] {
			*b.target = b.value
			sources[b.key] = SourceFlag
		}
	}
}
