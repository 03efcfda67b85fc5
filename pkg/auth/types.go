package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents an identity record in the credential store. The store
// owns the record; this system only reads it after registration.
type User struct {
	ID        uuid.UUID
	LoginID   string
	Email     string
	CreatedAt time.Time
}

// Storage defines the operations the adapter requires from the backing
// user store. Implementations map storage-specific error shapes to the
// sentinels of this package.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByLoginID(ctx context.Context, loginID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	StorePasswordHash(ctx context.Context, userID uuid.UUID, hash []byte) error
	GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
