package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record a bearer token resolves to. Only
// authenticated sessions exist: one is created at login and destroyed at
// logout or expiry.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	LoginID   string    `json:"login_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession creates a session for the given identity with a fixed TTL
// measured from now.
func NewSession(userID uuid.UUID, loginID, email string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		LoginID:   loginID,
		Email:     email,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}
