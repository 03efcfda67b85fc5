package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/shopdemo/authkit/pkg/logger"
)

// State classifies a request at the session boundary.
type State int

const (
	// StateNoToken means the request carried no session token at all.
	StateNoToken State = iota
	// StateInvalid means a token was present but failed signature, expiry
	// or existence checks; the client has been told to drop it.
	StateInvalid
	// StateValid means the token resolved to a live session.
	StateValid
)

// Manager orchestrates the session lifecycle: minting tokens at login,
// resolving them on each request and destroying them at logout.
type Manager struct {
	store     Store
	transport Transport
	codec     *Codec
	config    Config
	log       *slog.Logger
}

// New creates a session manager. A Config secret is mandatory; store and
// transport default to in-memory storage and cookie transport when a
// cookie manager is supplied via options.
func New(cfg Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		config: cfg,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	codec, err := NewCodec(cfg.Secret)
	if err != nil {
		return nil, err
	}
	m.codec = codec

	if m.store == nil {
		m.store = NewMemoryStore(cfg.CleanupInterval)
	}
	if m.transport == nil {
		return nil, ErrNoTransport
	}

	return m, nil
}

// Authenticate mints a session for a verified identity and instructs the
// client to store the token. Called only after credentials have been
// verified by the credential store adapter.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, userID uuid.UUID, loginID, email string) (*Session, error) {
	session := NewSession(userID, loginID, email, m.config.TTL)

	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	tok, err := m.codec.Mint(session)
	if err != nil {
		_ = m.store.Delete(ctx, session.ID)
		return nil, err
	}

	if err := m.transport.SetToken(w, tok, m.config.TTL); err != nil {
		_ = m.store.Delete(ctx, session.ID)
		return nil, err
	}

	return session, nil
}

// Resolve classifies the request. A missing token is unauthenticated
// without error. A present token must pass signature, expiry and existence
// checks to reach StateValid; any failure, including store errors,
// degrades to StateInvalid and the stale credential is cleared from the
// client so subsequent requests do not repeat the failed check.
func (m *Manager) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, State) {
	tok, err := m.transport.GetToken(r)
	if err != nil {
		return nil, StateNoToken
	}

	id, err := m.codec.Parse(tok)
	if err != nil {
		m.invalidate(w)
		return nil, StateInvalid
	}

	session, err := m.store.Get(ctx, id)
	if err != nil {
		// Store unavailability fails closed: deny rather than trust a
		// token whose existence cannot be confirmed.
		m.log.WarnContext(ctx, "session resolution failed",
			logger.Error(err),
			logger.Component("session"),
		)
		m.invalidate(w)
		return nil, StateInvalid
	}

	return session, StateValid
}

// Destroy invalidates the session referenced by the request's token, if
// any, and unconditionally clears the client-side cookie. It is idempotent
// and succeeds even when no valid session existed.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if tok, err := m.transport.GetToken(r); err == nil {
		if id, err := m.codec.Parse(tok); err == nil {
			if err := m.store.Delete(ctx, id); err != nil {
				m.log.WarnContext(ctx, "session delete failed",
					logger.Error(err),
					logger.Component("session"),
				)
			}
		}
	}

	return m.transport.ClearToken(w)
}

// DestroyAllForUser revokes every session belonging to a user.
func (m *Manager) DestroyAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.store.DeleteByUserID(ctx, userID)
}

func (m *Manager) invalidate(w http.ResponseWriter) {
	if w != nil {
		_ = m.transport.ClearToken(w)
	}
}
