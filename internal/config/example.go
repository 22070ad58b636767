package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasker configuration file
# Values can be overridden by TASKER_* environment variables or CLI flags.

# Storage backend: "json" (flat array) or "xml" (<tasks> tree)
storage_type = "json"

# Storage file path base, relative to the working directory.
# The backend extension (.json or .xml) is added when the name has none.
storage_file = "tasks"

# Log output goes to stderr: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

# log_timestamps = false
# log_caller = false
`
}
