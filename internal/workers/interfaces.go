// Package workers runs groups of long-lived workers that share one
// lifetime: the first failure stops the whole group.
package workers

import "context"

// Worker is the interface that must be implemented by any long-lived
// worker, such as one HTTP server of the host.
//
// Run blocks until ctx is cancelled or the worker fails. A worker stopped
// by cancellation returns nil.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a plain function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
