// Package redis establishes the Redis connection used by the session
// store, with retrying connects and a healthcheck closure for readiness
// probes.
package redis
