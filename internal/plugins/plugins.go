// Package plugins lists the modules compiled into the webapp binary.
package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugin"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugins/passwordauth"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugins/usercore"
	"github.com/MKhiriev/go-webapp-plugins/internal/server"
)

// Factories returns the static plugin list. Order matters: user_password_auth
// references tables created by user_core.
func Factories() []plugin.Factory {
	return []plugin.Factory{
		server.NewCoreMetadata,
		usercore.NewMetadata,
		passwordauth.NewMetadata,
	}
}

// Register builds the metadata of every compiled-in plugin.
func Register(configsPath string) ([]plugin.Metadata, error) {
	return plugin.Register(configsPath, Factories()...)
}

// Init initializes every non-core plugin in order. On failure the plugins
// already initialized are closed again.
func Init(ctx context.Context, list []plugin.Metadata, log *logger.Logger) ([]*plugin.Guarded, error) {
	var initialized []*plugin.Guarded

	for _, meta := range plugin.NonCore(list) {
		log.Info().Str("plugin", meta.Name()).Msg("initializing plugin")

		instance, err := meta.InitPlugin(ctx, log)
		if err != nil {
			closeErr := Close(initialized)
			return nil, errors.Join(fmt.Errorf("error initializing plugin %s: %w", meta.Name(), err), closeErr)
		}
		initialized = append(initialized, plugin.Guard(meta.Name(), instance))
	}

	return initialized, nil
}

// Close releases the resources of every instance.
func Close(instances []*plugin.Guarded) error {
	var errs []error
	for _, instance := range instances {
		if err := instance.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", instance.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// InitOne initializes only the named plugin, for commands working with a
// single plugin's services. The caller closes the instance.
func InitOne[T plugin.Instance](ctx context.Context, list []plugin.Metadata, name string, log *logger.Logger) (T, error) {
	var zero T
	for _, meta := range list {
		if meta.Name() != name {
			continue
		}
		instance, err := meta.InitPlugin(ctx, log)
		if err != nil {
			return zero, err
		}
		typed, ok := instance.(T)
		if !ok {
			if closer, ok := instance.(io.Closer); ok {
				closer.Close()
			}
			return zero, fmt.Errorf("plugin %s has unexpected instance type %T", name, instance)
		}
		return typed, nil
	}
	return zero, fmt.Errorf("plugin %s is not registered", name)
}
