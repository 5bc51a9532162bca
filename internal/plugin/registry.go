package plugin

import "fmt"

// Register builds the metadata of every factory in order and checks that no
// two modules share a name.
func Register(configsPath string, factories ...Factory) ([]Metadata, error) {
	list := make([]Metadata, 0, len(factories))
	seen := make(map[string]struct{}, len(factories))

	for _, factory := range factories {
		meta, err := factory(configsPath)
		if err != nil {
			return nil, fmt.Errorf("error building plugin metadata: %w", err)
		}

		if _, dup := seen[meta.Name()]; dup {
			return nil, &DuplicatePluginNameError{Name: meta.Name()}
		}
		seen[meta.Name()] = struct{}{}

		list = append(list, meta)
	}

	return list, nil
}

// Core returns the metadata describing the host.
func Core(list []Metadata) (Metadata, error) {
	for _, meta := range list {
		if meta.IsCore() {
			return meta, nil
		}
	}
	return nil, ErrNoCorePlugin
}

// NonCore returns every module the host has to initialize, in registration
// order.
func NonCore(list []Metadata) []Metadata {
	out := make([]Metadata, 0, len(list))
	for _, meta := range list {
		if !meta.IsCore() {
			out = append(out, meta)
		}
	}
	return out
}
