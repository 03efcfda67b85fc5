package session

import (
	"log/slog"

	"github.com/shopdemo/authkit/pkg/cookie"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithStore sets a custom session store.
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport sets a custom session transport.
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithCookieManager installs the default cookie transport backed by the
// given cookie manager, using the manager's configured cookie name and
// Secure flag.
func WithCookieManager(cookieMgr *cookie.Manager) Option {
	return func(m *Manager) {
		m.transport = NewCookieTransport(cookieMgr, m.config.CookieName, m.config.SecureCookies)
	}
}

// WithLogger sets the logger used for degraded-path warnings.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}
