package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopdemo/authkit/pkg/cookie"
	"github.com/shopdemo/authkit/pkg/session"
)

const cookieSecret = "session-test-secret-that-is-long-enough1"

func testConfig() session.Config {
	return session.Config{
		CookieName:      "session_token",
		Secret:          "session-signing-secret",
		TTL:             time.Hour,
		SecureCookies:   true,
		CleanupInterval: 0,
	}
}

func setupManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()

	cookieMgr, err := cookie.New([]string{cookieSecret})
	require.NoError(t, err)

	manager, err := session.New(testConfig(), append([]session.Option{
		session.WithCookieManager(cookieMgr),
	}, opts...)...)
	require.NoError(t, err)
	return manager
}

func login(t *testing.T, m *session.Manager, loginID string) (*session.Session, []*http.Cookie) {
	t.Helper()

	w := httptest.NewRecorder()
	sess, err := m.Authenticate(context.Background(), w, uuid.New(), loginID, loginID+"@example.com")
	require.NoError(t, err)
	return sess, w.Result().Cookies()
}

func requestWith(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestManager_New(t *testing.T) {
	t.Run("requires secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.Secret = ""
		_, err := session.New(cfg, session.WithStore(session.NewMemoryStore(0)))
		assert.ErrorIs(t, err, session.ErrNoSecret)
	})

	t.Run("requires transport", func(t *testing.T) {
		_, err := session.New(testConfig(), session.WithStore(session.NewMemoryStore(0)))
		assert.ErrorIs(t, err, session.ErrNoTransport)
	})
}

func TestManager_Authenticate(t *testing.T) {
	manager := setupManager(t)

	sess, cookies := login(t, manager, "alice")

	assert.Equal(t, "alice", sess.LoginID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)

	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "session_token", c.Name)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestManager_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("no token", func(t *testing.T) {
		manager := setupManager(t)

		w := httptest.NewRecorder()
		sess, state := manager.Resolve(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, sess)
		assert.Equal(t, session.StateNoToken, state)
		assert.Empty(t, w.Result().Cookies(), "no-token requests must not touch the client cookie")
	})

	t.Run("valid token", func(t *testing.T) {
		manager := setupManager(t)
		minted, cookies := login(t, manager, "alice")

		w := httptest.NewRecorder()
		sess, state := manager.Resolve(ctx, w, requestWith(cookies))
		require.Equal(t, session.StateValid, state)
		assert.Equal(t, minted.ID, sess.ID)
		assert.Equal(t, "alice", sess.LoginID)
	})

	t.Run("forged token clears cookie", func(t *testing.T) {
		manager := setupManager(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session_token", Value: "forged-value"})

		sess, state := manager.Resolve(ctx, w, r)
		assert.Nil(t, sess)
		assert.Equal(t, session.StateInvalid, state)

		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, "session_token", cleared[0].Name)
		assert.Negative(t, cleared[0].MaxAge)
	})

	t.Run("token signed with different secret", func(t *testing.T) {
		manager := setupManager(t)

		otherCfg := testConfig()
		otherCfg.Secret = "a-completely-different-signing-secret"
		cookieMgr, err := cookie.New([]string{cookieSecret})
		require.NoError(t, err)
		other, err := session.New(otherCfg, session.WithCookieManager(cookieMgr))
		require.NoError(t, err)

		_, cookies := login(t, other, "mallory")

		w := httptest.NewRecorder()
		sess, state := manager.Resolve(ctx, w, requestWith(cookies))
		assert.Nil(t, sess)
		assert.Equal(t, session.StateInvalid, state)
	})

	t.Run("expired token", func(t *testing.T) {
		cfg := testConfig()
		cfg.TTL = -time.Second
		cookieMgr, err := cookie.New([]string{cookieSecret})
		require.NoError(t, err)
		manager, err := session.New(cfg, session.WithCookieManager(cookieMgr))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		_, err = manager.Authenticate(ctx, w, uuid.New(), "alice", "alice@example.com")
		require.NoError(t, err)

		w2 := httptest.NewRecorder()
		sess, state := manager.Resolve(ctx, w2, requestWith(w.Result().Cookies()))
		assert.Nil(t, sess)
		assert.Equal(t, session.StateInvalid, state)
	})

	t.Run("revoked session fails existence check", func(t *testing.T) {
		manager := setupManager(t)
		_, cookies := login(t, manager, "alice")

		w := httptest.NewRecorder()
		require.NoError(t, manager.Destroy(ctx, w, requestWith(cookies)))

		// Replay the original, still-signed and unexpired token.
		w2 := httptest.NewRecorder()
		sess, state := manager.Resolve(ctx, w2, requestWith(cookies))
		assert.Nil(t, sess)
		assert.Equal(t, session.StateInvalid, state)
	})

	t.Run("store failure fails closed", func(t *testing.T) {
		manager := setupManager(t, session.WithStore(failingStore{}))
		_, cookies := login(t, setupManager(t), "alice")

		w := httptest.NewRecorder()
		sess, state := manager.Resolve(ctx, w, requestWith(cookies))
		assert.Nil(t, sess)
		assert.Equal(t, session.StateInvalid, state)
	})
}

func TestManager_Destroy(t *testing.T) {
	ctx := context.Background()
	manager := setupManager(t)

	t.Run("without session", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := manager.Destroy(ctx, w, httptest.NewRequest(http.MethodPost, "/", nil))
		require.NoError(t, err)

		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Negative(t, cleared[0].MaxAge)
	})

	t.Run("twice in a row", func(t *testing.T) {
		_, cookies := login(t, manager, "alice")

		w1 := httptest.NewRecorder()
		require.NoError(t, manager.Destroy(ctx, w1, requestWith(cookies)))

		w2 := httptest.NewRecorder()
		require.NoError(t, manager.Destroy(ctx, w2, requestWith(cookies)))
	})
}

func TestManager_DestroyAllForUser(t *testing.T) {
	ctx := context.Background()
	manager := setupManager(t)

	userID := uuid.New()
	w := httptest.NewRecorder()
	_, err := manager.Authenticate(ctx, w, userID, "alice", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, manager.DestroyAllForUser(ctx, userID))

	w2 := httptest.NewRecorder()
	_, state := manager.Resolve(ctx, w2, requestWith(w.Result().Cookies()))
	assert.Equal(t, session.StateInvalid, state)
}

// failingStore simulates an unreachable backend.
type failingStore struct{}

func (failingStore) Create(context.Context, *session.Session) error {
	return session.ErrStoreUnavailable
}

func (failingStore) Get(context.Context, uuid.UUID) (*session.Session, error) {
	return nil, session.ErrStoreUnavailable
}

func (failingStore) Delete(context.Context, uuid.UUID) error { return session.ErrStoreUnavailable }

func (failingStore) DeleteByUserID(context.Context, uuid.UUID) error {
	return session.ErrStoreUnavailable
}

func (failingStore) DeleteExpired(context.Context) error { return session.ErrStoreUnavailable }
