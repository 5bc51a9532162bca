package plugin

import (
	"errors"
	"fmt"
)

var (
	ErrNoConfig            = errors.New("plugin has no config")
	ErrDuplicatePluginName = errors.New("duplicate plugin name")
	ErrCoreInitialization  = errors.New("core plugin is run by the host and cannot be initialized")
	ErrNoCorePlugin        = errors.New("no core plugin registered")
)

// DuplicatePluginNameError names the module registered twice.
type DuplicatePluginNameError struct {
	Name string
}

func (e *DuplicatePluginNameError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicatePluginName, e.Name)
}

func (e *DuplicatePluginNameError) Is(target error) bool {
	return target == ErrDuplicatePluginName
}
