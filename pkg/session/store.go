package session

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for session record persistence.
type Store interface {
	// Create stores a new session record.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by ID. Expired records are treated as absent.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)

	// Delete removes a session by ID. Deleting an absent session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID removes all sessions belonging to a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes all expired session records.
	DeleteExpired(ctx context.Context) error
}
