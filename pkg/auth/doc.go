// Package auth is the credential store adapter: it maps a login
// identifier and password to a server-trusted identity, delegating user
// record storage to a Storage implementation.
//
// Authenticate deliberately collapses every failure cause — unknown login
// id, wrong password, unreachable store — into ErrInvalidCredentials so
// callers cannot leak which check failed. Store failures are still logged
// with full detail for alerting; they are just never differentiated in the
// returned error.
package auth
