package session

import (
	"net/http"
	"time"

	"github.com/shopdemo/authkit/pkg/cookie"
)

// Transport defines how session tokens travel between client and server.
type Transport interface {
	// GetToken extracts the session token from the request.
	GetToken(r *http.Request) (string, error)

	// SetToken sends the session token to the client with the given lifetime.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken instructs the client to drop the token.
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport carries the token in an HttpOnly cookie. The cookie
// attributes follow the token's own lifetime: Max-Age equals the session
// TTL and clearing sets an immediate expiry.
type CookieTransport struct {
	cookieMgr  *cookie.Manager
	cookieName string
	secure     bool
}

// NewCookieTransport creates a cookie-based transport.
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, secure bool) *CookieTransport {
	return &CookieTransport{
		cookieMgr:  cookieMgr,
		cookieName: cookieName,
		secure:     secure,
	}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	tok, err := t.cookieMgr.Get(r, t.cookieName)
	if err != nil || tok == "" {
		return "", ErrSessionNotFound
	}
	return tok, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	return t.cookieMgr.Set(w, t.cookieName, token,
		cookie.WithPath("/"),
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
		cookie.WithSecure(t.secure),
	)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName)
	return nil
}

var _ Transport = (*CookieTransport)(nil)
