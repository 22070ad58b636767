// Package config loads tasker configuration.
//
// Values are resolved in priority order, each layer overriding the previous:
//
//  1. Built-in defaults
//  2. User config file (~/.tasker/tasker.toml or the OS config directory)
//  3. Project config file (tasker.toml or .tasker.toml in the working directory)
//  4. Environment variables (TASKER_*)
//  5. Global command line flags
//
// An explicit file given with -config or TASKER_CONFIG replaces the user and
// project files. LoadWithSources records which layer supplied each value.
package config
