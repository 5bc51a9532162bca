// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package plugin defines the contracts between the webapp host and the
// modules compiled into it.
//
// A module is described by a [Metadata] value built at startup from the
// configs directory. The host asks every non-core metadata for a live
// [Instance] and lets each instance register its routes on every HTTP
// worker's router.
package plugin

import (
	"context"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/go-chi/chi/v5"
)

// Metadata describes one compiled-in module.
type Metadata interface {
	// Name is the process-unique module name. It also names the config
	// file: <configsPath>/<Name>.yaml.
	Name() string

	// ConfigDump re-reads the module config and serializes it with secrets
	// redacted. Modules without a config return ErrNoConfig.
	ConfigDump() (string, error)

	// ConfigDocumentation describes the config schema. An empty string means
	// the module has no config.
	ConfigDocumentation() string

	// InitPlugin performs the module setup, such as opening its pool and
	// applying migrations. A failure aborts startup.
	InitPlugin(ctx context.Context, log *logger.Logger) (Instance, error)

	// IsCore reports whether the metadata describes the host itself.
	IsCore() bool
}

// Instance is an initialized module.
type Instance interface {
	// RegisterRoutes mounts the module routes on r and documents them.
	// It is called once per HTTP worker with a fresh router and must not
	// touch the database.
	RegisterRoutes(r chi.Router) *apidoc.Fragment
}

// ReadinessChecker is implemented by instances whose readiness depends on
// an external resource.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// Factory builds the metadata of one module for a configs directory.
type Factory func(configsPath string) (Metadata, error)
