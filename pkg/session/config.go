package session

import "time"

// Config holds session configuration.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_token"`

	// Secret signs session tokens. Required; the process must not start without it.
	Secret string `env:"SESSION_SECRET,required"`

	// TTL is the fixed validity window of a session, measured from mint time.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"1h"`

	// SecureCookies enables the Secure flag on session cookies.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"true"`

	// CleanupInterval for expired records in stores that sweep (0 to disable).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns default session configuration without a secret;
// callers must supply one.
func DefaultConfig() Config {
	return Config{
		CookieName:      "session_token",
		TTL:             time.Hour,
		SecureCookies:   true,
		CleanupInterval: 5 * time.Minute,
	}
}
