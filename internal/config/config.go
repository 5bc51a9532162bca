// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// DefaultConfigsPath is the directory holding one <plugin>.yaml file per
// plugin when neither WEBAPP_CONFIGS_PATH nor -c is given.
const DefaultConfigsPath = "/etc/webapp/"

// envPrefix is prepended to every env tag of [StructuredConfig].
const envPrefix = "WEBAPP_"

// StructuredConfig is the process bootstrap configuration: everything the
// binary must know before any plugin config file can be read. It is
// populated by merging defaults, environment variables and command-line
// flags, in that order.
//
// Struct tags:
//   - env: environment variable name, prefixed with WEBAPP_.
type StructuredConfig struct {
	// ConfigsPath is the directory containing per-plugin YAML documents.
	// Env: WEBAPP_CONFIGS_PATH, flags: -c / -config.
	ConfigsPath string `env:"CONFIGS_PATH"`

	// LogLevel overrides the level configured in core.yaml when non-empty.
	// Env: WEBAPP_LOG_LEVEL, flag: -log-level.
	LogLevel string `env:"LOG_LEVEL"`

	// Args holds the positional arguments left after flag parsing: the
	// subcommand and its own flags.
	Args []string
}

// GetStructuredConfig loads, merges, and validates the bootstrap
// configuration. Priority, last non-zero wins:
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags parsed from args (without the program name)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		build()
}
