package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginIDTaken       = errors.New("login id already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrWeakPassword       = errors.New("password does not meet security requirements")
	ErrMissingField       = errors.New("missing required field")
	ErrStoreUnavailable   = errors.New("credential store unavailable")
)
