// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package usercore is the user_core plugin: the user and session tables,
// session logout, the user list and the session info endpoint.
package usercore

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	httphandler "github.com/MKhiriev/go-webapp-plugins/internal/handler/http"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugin"
	"github.com/MKhiriev/go-webapp-plugins/internal/service"
	"github.com/MKhiriev/go-webapp-plugins/internal/store"
	"github.com/MKhiriev/go-webapp-plugins/migrations"
	"github.com/go-chi/chi/v5"
)

const Name = "user_core"

// Config is the schema of user_core.yaml.
type Config struct {
	store.Config `yaml:",inline"`
}

type Metadata struct {
	plugin.Descriptor[Config]
}

// NewMetadata is the [plugin.Factory] of user_core.
func NewMetadata(configsPath string) (plugin.Metadata, error) {
	return Metadata{Descriptor: plugin.NewDescriptor[Config](Name, configsPath)}, nil
}

// InitPlugin opens the plugin pool and applies the user_core migrations.
func (m Metadata) InitPlugin(ctx context.Context, log *logger.Logger) (plugin.Instance, error) {
	log = log.WithRole(Name)

	cfg, err := m.config()
	if err != nil {
		return nil, err
	}

	pool, err := store.OpenMigrated(ctx, cfg.Config, migrations.UserCore, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	return NewInstance(pool, log), nil
}

func (m Metadata) config() (Config, error) {
	cell, err := m.LoadConfig()
	if err != nil {
		return Config{}, err
	}
	return cell.Get()
}

// Pool is what the instance needs from its connection pool.
type Pool interface {
	store.Transactor
	Ping(ctx context.Context) error
	Close() error
}

type Instance struct {
	pool     Pool
	services *service.Services
	handler  *httphandler.Handler
}

func NewInstance(pool Pool, log *logger.Logger) *Instance {
	services := service.NewServices(pool, 0, log)
	return &Instance{
		pool:     pool,
		services: services,
		handler:  httphandler.NewHandler(services, log),
	}
}

// RegisterRoutes implements [plugin.Instance].
func (i *Instance) RegisterRoutes(r chi.Router) *apidoc.Fragment {
	return i.handler.RegisterUserCoreRoutes(r)
}

// Services exposes the account services to the command line.
func (i *Instance) Services() *service.Services {
	return i.services
}

func (i *Instance) Ready(ctx context.Context) error {
	return i.pool.Ping(ctx)
}

func (i *Instance) Close() error {
	return i.pool.Close()
}
