package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidConfigsPath indicates an empty plugin configs directory.
	ErrInvalidConfigsPath = errors.New("invalid configs path")
	// ErrInvalidLogLevel indicates a log level name that cannot be parsed.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config cell errors.
var (
	// ErrReadingConfigFile is returned by [LoadCell] when the YAML file
	// cannot be read.
	ErrReadingConfigFile = errors.New("failed to load config file")
	// ErrParsingConfigFile is returned by [LoadCell] when the YAML document
	// does not match the declared schema or fails validation.
	ErrParsingConfigFile = errors.New("failed to parse config file")
	// ErrConfigPoisoned is returned by [WithConfig] once a callback has
	// panicked while holding the cell lock.
	ErrConfigPoisoned = errors.New("cannot lock mutex for config")
)

// Secret errors.
var (
	ErrInvalidSecret   = errors.New("invalid secret definition")
	ErrEmptySecret     = errors.New("secret is empty")
	ErrSecretEnvNotSet = errors.New("secret environment variable is not set")
	ErrSecretCommand   = errors.New("secret command failed")
)
