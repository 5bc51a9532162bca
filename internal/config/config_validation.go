// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
)

// validate checks that the final merged [StructuredConfig] can be used to
// bootstrap the process.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.ConfigsPath) == "" {
		return ErrInvalidConfigsPath
	}

	if cfg.LogLevel != "" {
		if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
		}
	}

	return nil
}
