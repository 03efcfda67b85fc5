// Package session implements the session boundary of the auth service:
// how a verified identity becomes a transportable bearer token and how an
// incoming request resolves back to that identity.
//
// A session token is a signed structure (see pkg/token) carrying the
// session ID and expiry, referencing a server-side session record. A token
// is accepted only when all three checks pass: the signature verifies, the
// embedded expiry has not passed, and the record still exists in the
// Store. Logout deletes the record, so a replayed token fails the
// existence check even before its expiry.
//
// Resolution over a single request is a small state machine:
//
//	NoToken ──────────────────────────────▶ unauthenticated, no error
//	TokenPresent ──parse ok, record ok───▶ Valid (identity in context)
//	TokenPresent ──any failure───────────▶ Invalid (client cookie cleared)
//
// Internal failures while validating (for example an unreachable store)
// degrade to Invalid rather than propagating: a backend hiccup denies
// access instead of granting it.
package session
