package plugin

import (
	"context"
	"io"
	"sync"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	"github.com/go-chi/chi/v5"
)

// Guarded shares one Instance between HTTP workers. Route registration is
// serialized by a mutex.
type Guarded struct {
	name string

	mu       sync.Mutex
	instance Instance
}

func Guard(name string, instance Instance) *Guarded {
	return &Guarded{name: name, instance: instance}
}

func (g *Guarded) Name() string {
	return g.name
}

// RegisterRoutes implements [Instance].
func (g *Guarded) RegisterRoutes(r chi.Router) *apidoc.Fragment {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.instance.RegisterRoutes(r)
}

// Ready reports the readiness of the wrapped instance. Instances without a
// readiness check are always ready.
func (g *Guarded) Ready(ctx context.Context) error {
	if checker, ok := g.instance.(ReadinessChecker); ok {
		return checker.Ready(ctx)
	}
	return nil
}

// Close releases the resources of the wrapped instance, if it holds any.
func (g *Guarded) Close() error {
	if closer, ok := g.instance.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
