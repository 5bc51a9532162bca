// Package server runs the webapp host.
//
// The host owns the core configuration, binds one listener and serves it
// from a fixed number of HTTP workers. Every worker builds its own router
// from the initialized plugins and publishes the merged API document.
// Termination signals shut all workers down gracefully.
package server
