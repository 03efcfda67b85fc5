// Package userstore provides the PostgreSQL-backed implementation of the
// auth.Storage interface on top of pgx connection pools.
package userstore
