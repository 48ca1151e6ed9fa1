// Package config loads the engine's YAML configuration.
//
// The config file is optional: every field has a default, and the CLI runs
// with defaults alone when no file is given. ${VAR} references in the file
// are expanded from the environment before parsing.
package config
