package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopdemo/authkit/pkg/auth"
)

// fakeStorage is an in-memory Storage for tests. failWith, when set,
// makes every operation return that error to simulate an unreachable
// backend.
type fakeStorage struct {
	users    map[uuid.UUID]*auth.User
	hashes   map[uuid.UUID][]byte
	failWith error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:  make(map[uuid.UUID]*auth.User),
		hashes: make(map[uuid.UUID][]byte),
	}
}

func (f *fakeStorage) seed(t *testing.T, loginID, email, password string) *auth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &auth.User{ID: uuid.New(), LoginID: loginID, Email: email}
	f.users[user.ID] = user
	f.hashes[user.ID] = hash
	return user
}

func (f *fakeStorage) CreateUser(_ context.Context, user *auth.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStorage) GetUserByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	user, ok := f.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStorage) GetUserByLoginID(_ context.Context, loginID string) (*auth.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, user := range f.users {
		if user.LoginID == loginID {
			return user, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (f *fakeStorage) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (f *fakeStorage) DeleteUser(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	delete(f.hashes, id)
	return nil
}

func (f *fakeStorage) StorePasswordHash(_ context.Context, userID uuid.UUID, hash []byte) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.hashes[userID] = hash
	return nil
}

func (f *fakeStorage) GetPasswordHash(_ context.Context, userID uuid.UUID) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	hash, ok := f.hashes[userID]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return hash, nil
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		storage := newFakeStorage()
		seeded := storage.seed(t, "alice", "alice@example.com", "correct-horse")
		svc := auth.NewService(storage)

		user, err := svc.Authenticate(ctx, "alice", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, user.ID)
		assert.Equal(t, "alice", user.LoginID)
	})

	t.Run("all failures return the same error", func(t *testing.T) {
		storage := newFakeStorage()
		storage.seed(t, "alice", "alice@example.com", "correct-horse")
		svc := auth.NewService(storage)

		failing := newFakeStorage()
		failing.failWith = errors.New("connection refused")
		unreachable := auth.NewService(failing)

		cases := map[string]error{}

		_, err := svc.Authenticate(ctx, "nobody", "whatever")
		cases["unknown login id"] = err

		_, err = svc.Authenticate(ctx, "alice", "wrong-password")
		cases["wrong password"] = err

		_, err = unreachable.Authenticate(ctx, "alice", "correct-horse")
		cases["store unavailable"] = err

		_, err = svc.Authenticate(ctx, "", "")
		cases["empty input"] = err

		for name, err := range cases {
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials, name)
			assert.EqualError(t, err, auth.ErrInvalidCredentials.Error(), "%s must not add detail", name)
		}
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		storage := newFakeStorage()
		svc := auth.NewService(storage, auth.WithBcryptCost(bcrypt.MinCost))

		user, err := svc.Register(ctx, "alice", " Alice@Example.COM ", "long-enough-pass")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.LoginID)
		assert.Equal(t, "alice@example.com", user.Email, "email is normalized")
		assert.NotEqual(t, uuid.Nil, user.ID)

		hash, err := storage.GetPasswordHash(ctx, user.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("long-enough-pass")))

		// Registered credentials verify through the normal path.
		_, err = svc.Authenticate(ctx, "alice", "long-enough-pass")
		assert.NoError(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		svc := auth.NewService(newFakeStorage())

		_, err := svc.Register(ctx, "", "a@b.c", "long-enough-pass")
		assert.ErrorIs(t, err, auth.ErrMissingField)

		_, err = svc.Register(ctx, "alice", "not-an-email", "long-enough-pass")
		assert.ErrorIs(t, err, auth.ErrMissingField)

		_, err = svc.Register(ctx, "alice", "a@b.c", "short")
		assert.ErrorIs(t, err, auth.ErrWeakPassword)
	})

	t.Run("duplicate login id", func(t *testing.T) {
		storage := newFakeStorage()
		storage.seed(t, "alice", "alice@example.com", "correct-horse")
		svc := auth.NewService(storage)

		_, err := svc.Register(ctx, "alice", "other@example.com", "long-enough-pass")
		assert.ErrorIs(t, err, auth.ErrLoginIDTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		storage := newFakeStorage()
		storage.seed(t, "alice", "alice@example.com", "correct-horse")
		svc := auth.NewService(storage)

		_, err := svc.Register(ctx, "alice2", "alice@example.com", "long-enough-pass")
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})
}
