// Package httpserver wraps http.Server with graceful shutdown, signal
// handling and a health endpoint suitable for liveness and readiness
// probes.
package httpserver
