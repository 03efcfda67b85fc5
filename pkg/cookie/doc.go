// Package cookie provides a small manager for HTTP cookies with HMAC
// signing. Signed values are tamper-evident: GetSigned verifies the
// signature with constant-time comparison before returning the value, and
// multiple secrets are supported so keys can be rotated without
// invalidating cookies issued under the previous key.
//
// The manager carries default attributes (Path, HttpOnly, SameSite, ...)
// that individual Set calls can override through functional options.
package cookie
