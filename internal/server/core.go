package server

import (
	"context"

	"github.com/MKhiriev/go-webapp-plugins/internal/config"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugin"
)

// CoreName names the host in the plugin list and its config file.
const CoreName = "core"

// CoreMetadata describes the host itself. It documents and dumps core.yaml
// but is never initialized as a plugin.
type CoreMetadata struct {
	plugin.Descriptor[Config]
}

// NewCoreMetadata is the [plugin.Factory] of the host.
func NewCoreMetadata(configsPath string) (plugin.Metadata, error) {
	return CoreMetadata{Descriptor: plugin.NewDescriptor[Config](CoreName, configsPath)}, nil
}

// LoadCoreConfig reads core.yaml from configsPath.
func LoadCoreConfig(configsPath string) (*config.Cell[Config], error) {
	return plugin.NewDescriptor[Config](CoreName, configsPath).LoadConfig()
}

func (CoreMetadata) IsCore() bool {
	return true
}

func (CoreMetadata) InitPlugin(context.Context, *logger.Logger) (plugin.Instance, error) {
	return nil, plugin.ErrCoreInitialization
}
