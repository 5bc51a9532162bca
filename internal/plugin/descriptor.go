package plugin

import "github.com/MKhiriev/go-webapp-plugins/internal/config"

// Descriptor is the shared part of every module with a YAML config of type
// C. Modules embed it and add InitPlugin.
type Descriptor[C any] struct {
	name        string
	configsPath string
}

// NewDescriptor describes module name whose config lives in configsPath.
func NewDescriptor[C any](name, configsPath string) Descriptor[C] {
	return Descriptor[C]{name: name, configsPath: configsPath}
}

func (d Descriptor[C]) Name() string {
	return d.name
}

func (d Descriptor[C]) ConfigsPath() string {
	return d.configsPath
}

// LoadConfig reads the module config into a new cell.
func (d Descriptor[C]) LoadConfig() (*config.Cell[C], error) {
	return config.LoadCell[C](d.configsPath, d.name)
}

func (d Descriptor[C]) ConfigDump() (string, error) {
	cell, err := d.LoadConfig()
	if err != nil {
		return "", err
	}
	return cell.DumpYAML()
}

func (d Descriptor[C]) ConfigDocumentation() string {
	return config.Document(new(C))
}

func (d Descriptor[C]) IsCore() bool {
	return false
}
