// Package pg manages the PostgreSQL connection pool for the hosted user
// store: pooled connects with retry, goose schema migrations and a
// healthcheck closure for readiness probes.
package pg
