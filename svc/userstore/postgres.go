package userstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopdemo/authkit/pkg/auth"
	"github.com/shopdemo/authkit/pkg/pg"
)

const (
	loginIDConstraint = "users_login_id_key"
	emailConstraint   = "users_email_key"
)

// PostgresStore persists users and password hashes in PostgreSQL.
// It implements auth.Storage.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateUser inserts a new user record. Duplicate login ids and emails are
// mapped to auth.ErrLoginIDTaken and auth.ErrEmailTaken by constraint name.
func (s *PostgresStore) CreateUser(ctx context.Context, user *auth.User) error {
	const query = `
		INSERT INTO users (id, login_id, email, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.pool.Exec(ctx, query, user.ID, user.LoginID, user.Email, user.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			switch pg.ConstraintName(err) {
			case loginIDConstraint:
				return auth.ErrLoginIDTaken
			case emailConstraint:
				return auth.ErrEmailTaken
			}
			return auth.ErrLoginIDTaken
		}
		return errors.Join(auth.ErrStoreUnavailable, err)
	}
	return nil
}

// GetUserByID fetches a user by primary key.
func (s *PostgresStore) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	const query = `
		SELECT id, login_id, email, created_at
		FROM users
		WHERE id = $1`

	return s.queryUser(ctx, query, id)
}

// GetUserByLoginID fetches a user by its unique login id.
func (s *PostgresStore) GetUserByLoginID(ctx context.Context, loginID string) (*auth.User, error) {
	const query = `
		SELECT id, login_id, email, created_at
		FROM users
		WHERE login_id = $1`

	return s.queryUser(ctx, query, loginID)
}

// GetUserByEmail fetches a user by its unique email.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	const query = `
		SELECT id, login_id, email, created_at
		FROM users
		WHERE email = $1`

	return s.queryUser(ctx, query, email)
}

// DeleteUser removes a user record. The password hash row is removed by the
// ON DELETE CASCADE on password_hashes. Deleting a missing user is not an
// error, which keeps registration cleanup idempotent.
func (s *PostgresStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id = $1`

	if _, err := s.pool.Exec(ctx, query, id); err != nil {
		return errors.Join(auth.ErrStoreUnavailable, err)
	}
	return nil
}

// StorePasswordHash upserts the password hash for the given user.
func (s *PostgresStore) StorePasswordHash(ctx context.Context, userID uuid.UUID, hash []byte) error {
	const query = `
		INSERT INTO password_hashes (user_id, hash, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET hash = EXCLUDED.hash, updated_at = now()`

	if _, err := s.pool.Exec(ctx, query, userID, hash); err != nil {
		return errors.Join(auth.ErrStoreUnavailable, err)
	}
	return nil
}

// GetPasswordHash returns the stored password hash for the given user, or
// auth.ErrUserNotFound when no hash exists.
func (s *PostgresStore) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	const query = `SELECT hash FROM password_hashes WHERE user_id = $1`

	var hash []byte
	if err := s.pool.QueryRow(ctx, query, userID).Scan(&hash); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, errors.Join(auth.ErrStoreUnavailable, err)
	}
	return hash, nil
}

func (s *PostgresStore) queryUser(ctx context.Context, query string, arg any) (*auth.User, error) {
	var u auth.User
	err := s.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.LoginID, &u.Email, &u.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, errors.Join(auth.ErrStoreUnavailable, err)
	}
	return &u, nil
}
