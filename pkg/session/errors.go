package session

import "errors"

var (
	// ErrSessionNotFound indicates no session record exists for the token.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the session has passed its expiry.
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidToken indicates the bearer token failed signature or format checks.
	ErrInvalidToken = errors.New("session.invalid_token")

	// ErrNoSecret indicates the manager was constructed without a signing secret.
	ErrNoSecret = errors.New("session.no_secret")

	// ErrStoreUnavailable indicates the session store could not be reached.
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrNoTransport indicates no transport was configured.
	ErrNoTransport = errors.New("session.no_transport")
)
