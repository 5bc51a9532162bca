// Package passwordauth is the user_password_auth plugin: password storage,
// password login and password change.
package passwordauth

import (
	"context"
	"errors"
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

const (
	Name = "user_password_auth"

	defaultMinPasswordLength = 8
)

// Config is the schema of user_password_auth.yaml.
type Config struct {
	MinPasswordLength int `yaml:"min_password_length" doc:"Minimum password length in characters. Defaults to 8."`

	store.Config `yaml:",inline"`
}

// SetDefaults implements config.Defaulter.
func (c *Config) SetDefaults() {
	if c.MinPasswordLength == 0 {
		c.MinPasswordLength = defaultMinPasswordLength
	}
	c.Config.SetDefaults()
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.MinPasswordLength < 1 {
		return errors.New("min_password_length must be positive")
	}
	return c.Config.Validate()
}

type Metadata struct {
	plugin.Descriptor[Config]
}

// NewMetadata is the [plugin.Factory] of user_password_auth.
func NewMetadata(configsPath string) (plugin.Metadata, error) {
	return Metadata{Descriptor: plugin.NewDescriptor[Config](Name, configsPath)}, nil
}

// InitPlugin opens the plugin pool and applies the password migrations. The
// user_core tables must already exist.
func (m Metadata) InitPlugin(ctx context.Context, log *logger.Logger) (plugin.Instance, error) {
	log = log.WithRole(Name)

	cell, err := m.LoadConfig()
	if err != nil {
		return nil, err
	}
	cfg, err := cell.Get()
	if err != nil {
		return nil, err
	}

	pool, err := store.OpenMigrated(ctx, cfg.Config, migrations.UserPasswordAuth, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	return NewInstance(pool, cfg.MinPasswordLength, log), nil
}

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

func NewInstance(pool Pool, minPasswordLength int, log *logger.Logger) *Instance {
	services := service.NewServices(pool, minPasswordLength, log)
	return &Instance{
		pool:     pool,
		services: services,
		handler:  httphandler.NewHandler(services, log),
	}
}

func (i *Instance) RegisterRoutes(r chi.Router) *apidoc.Fragment {
	return i.handler.RegisterPasswordAuthRoutes(r)
}

// Services exposes password management to the command line.
func (i *Instance) Services() *service.Services {
	return i.services
}

func (i *Instance) Ready(ctx context.Context) error {
	return i.pool.Ping(ctx)
}

func (i *Instance) Close() error {
	return i.pool.Close()
}
