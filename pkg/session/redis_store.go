package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	userKeyPrefix    = "user_sessions:"
)

// RedisStore implements Store on Redis. Records expire through Redis TTLs,
// so DeleteExpired is a no-op and no sweep goroutine is needed.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.ID == uuid.Nil {
		return ErrInvalidToken
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, ttl)
	// Secondary index so DeleteByUserID can find every session of a user.
	pipe.SAdd(ctx, userKey(session.UserID), session.ID.String())
	pipe.Expire(ctx, userKey(session.UserID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	// Redis TTL and record expiry normally agree; the explicit check covers
	// records written with a longer TTL by an older deployment.
	if session.IsExpired() {
		_ = s.client.Del(ctx, sessionKey(id)).Err()
		return nil, ErrSessionExpired
	}

	return &session, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, userKey(session.UserID), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	ids, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return errors.Join(ErrStoreUnavailable, err)
	}

	pipe := s.client.TxPipeline()
	for _, raw := range ids {
		if id, err := uuid.Parse(raw); err == nil {
			pipe.Del(ctx, sessionKey(id))
		}
	}
	pipe.Del(ctx, userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts expired records itself.
func (s *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func userKey(userID uuid.UUID) string {
	return userKeyPrefix + userID.String()
}

var _ Store = (*RedisStore)(nil)
