// Package http implements the HTTP transport layer of the plugins.
//
// It provides the route groups each plugin mounts on a worker router, the
// request handlers behind them, the health probes of the host, and the
// middleware shared by every worker: request tracing, access logging and
// session authentication. Handlers translate requests into service calls
// and service errors into status codes.
package http
