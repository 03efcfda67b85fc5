// Package authapi exposes the authentication boundary over HTTP: an
// action-selector endpoint dispatching login, check, logout and register,
// with CORS handling and a uniform JSON error surface.
package authapi
