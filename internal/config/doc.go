// Package config provides configuration loading for the process and its
// plugins.
//
// Bootstrap settings (configs directory, log level override) are assembled
// from multiple sources in the following priority order (later sources
// override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables (WEBAPP_ prefix)
//  3. Command-line flags
//
// Every plugin keeps its own YAML document at <configs>/<plugin>.yaml,
// loaded once into a [Cell]. Sensitive values use [Secret], which resolves
// literal, environment or command sources and never prints its plaintext.
// [Document] renders a schema description from struct tags.
package config
