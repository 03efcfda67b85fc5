package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopdemo/authkit/pkg/logger"
)

// minPasswordLength matches the registration requirement of the original
// storefront: at least 8 characters.
const minPasswordLength = 8

// Service verifies credentials and registers accounts against a Storage.
type Service struct {
	storage    Storage
	bcryptCost int
	log        *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for internal failure detail.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// NewService creates a credential service backed by the given storage.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Authenticate verifies a login id and password and returns the matching
// user. Every failure returns ErrInvalidCredentials: unknown login id,
// wrong password and an unreachable store are indistinguishable to the
// caller so login responses cannot be used to enumerate accounts. Store
// failures are logged with full detail before being flattened.
func (s *Service) Authenticate(ctx context.Context, loginID, password string) (*User, error) {
	if loginID == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUserByLoginID(ctx, loginID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.log.ErrorContext(ctx, "credential store lookup failed",
				logger.Error(err),
				logger.Component("auth"),
			)
		}
		return nil, ErrInvalidCredentials
	}

	hash, err := s.storage.GetPasswordHash(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.log.ErrorContext(ctx, "password hash lookup failed",
				logger.Error(err),
				logger.UserID(user.ID.String()),
				logger.Component("auth"),
			)
		}
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by internal ID.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return user, nil
}

// Register creates a new user with a login id, email and password.
// Registration errors stay specific (taken login id, weak password): the
// enumeration concern of Authenticate does not apply to an endpoint whose
// purpose is to report whether an identifier is available.
func (s *Service) Register(ctx context.Context, loginID, email, password string) (*User, error) {
	loginID = strings.TrimSpace(loginID)
	email = normalizeEmail(email)

	if loginID == "" || email == "" || password == "" {
		return nil, ErrMissingField
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email", ErrMissingField)
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	if _, err := s.storage.GetUserByLoginID(ctx, loginID); err == nil {
		return nil, ErrLoginIDTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:        uuid.New(),
		LoginID:   loginID,
		Email:     email,
		CreatedAt: time.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrLoginIDTaken) || errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	if err := s.storage.StorePasswordHash(ctx, user.ID, hash); err != nil {
		// Remove the half-created account so the login id is not burned.
		if deleteErr := s.storage.DeleteUser(ctx, user.ID); deleteErr != nil {
			s.log.ErrorContext(ctx, "failed to clean up user after password save failure",
				logger.UserID(user.ID.String()),
				logger.Error(deleteErr),
				logger.Component("auth"),
			)
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
