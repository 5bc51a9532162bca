// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Defaulter is implemented by config schemas that fill unset fields after
// decoding.
type Defaulter interface {
	SetDefaults()
}

// Validator is implemented by config schemas that check their own
// invariants after defaults are applied.
type Validator interface {
	Validate() error
}

// Cell holds one plugin's configuration document loaded from
// <configsPath>/<name>.yaml. The value is always a successfully parsed
// document; read and parse errors surface from [LoadCell], never later.
type Cell[T any] struct {
	name string
	path string

	mu       sync.Mutex
	poisoned bool
	value    T
}

// FilePath returns the location of the YAML document for the named plugin.
func FilePath(configsPath, name string) string {
	return filepath.Join(configsPath, name+".yaml")
}

// LoadCell reads and parses <configsPath>/<name>.yaml into a new Cell.
// Unknown keys are rejected.
func LoadCell[T any](configsPath, name string) (*Cell[T], error) {
	path := FilePath(configsPath, name)

	value, err := readYAML[T](path)
	if err != nil {
		return nil, err
	}

	return &Cell[T]{name: name, path: path, value: value}, nil
}

// NewCell wraps an already constructed value. The path is left empty.
func NewCell[T any](name string, value T) *Cell[T] {
	return &Cell[T]{name: name, value: value}
}

// Name returns the plugin name the cell was loaded for.
func (c *Cell[T]) Name() string {
	return c.name
}

// Path returns the file the cell was loaded from.
func (c *Cell[T]) Path() string {
	return c.path
}

// WithConfig calls fn with the guarded value while holding the cell lock
// and returns its result. If fn panics the cell becomes poisoned: this and
// every later call return [ErrConfigPoisoned].
func WithConfig[T, R any](c *Cell[T], fn func(*T) (R, error)) (result R, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poisoned {
		return result, fmt.Errorf("%w %s", ErrConfigPoisoned, c.name)
	}

	defer func() {
		if p := recover(); p != nil {
			c.poisoned = true
			err = fmt.Errorf("%w %s: %v", ErrConfigPoisoned, c.name, p)
		}
	}()

	return fn(&c.value)
}

// Get returns a copy of the guarded value.
func (c *Cell[T]) Get() (T, error) {
	return WithConfig(c, func(v *T) (T, error) {
		return *v, nil
	})
}

// DumpYAML serializes the guarded value back to YAML. Secret fields are
// written in their redacted form.
func (c *Cell[T]) DumpYAML() (string, error) {
	return WithConfig(c, func(v *T) (string, error) {
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to serialize config %s: %w", c.name, err)
		}
		return string(data), nil
	})
}

func readYAML[T any](path string) (T, error) {
	var value T

	data, err := os.ReadFile(path)
	if err != nil {
		return value, fmt.Errorf("%w %s: %w", ErrReadingConfigFile, path, err)
	}

	if err := decodeYAML(data, &value); err != nil {
		return value, fmt.Errorf("%w %s: %w", ErrParsingConfigFile, path, err)
	}

	return value, nil
}

// decodeYAML strictly decodes data into v, then applies [Defaulter] and
// [Validator] when v implements them.
func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("document is empty")
		}
		return err
	}

	if d, ok := v.(Defaulter); ok {
		d.SetDefaults()
	}

	if val, ok := v.(Validator); ok {
		if err := val.Validate(); err != nil {
			return err
		}
	}

	return nil
}
