package server

import (
	"context"
	"net"
)

// Server defines the lifecycle contract of the webapp host.
//
// Run and Serve block until the context is cancelled, a termination signal
// arrives or a worker fails, and return after every worker has shut down.
type Server interface {
	// Run binds the configured address and serves it.
	Run(ctx context.Context) error

	// Serve serves an already bound listener and closes it on return.
	Serve(ctx context.Context, ln net.Listener) error
}
