// Package token creates and verifies compact signed tokens.
//
// A token is the base64url-encoded JSON payload followed by an
// HMAC-SHA256 signature over the payload bytes. Parse rejects any token
// whose signature does not verify, using constant-time comparison, before
// the payload is decoded. Payload types are generic, so callers define
// their own claims structs.
package token
