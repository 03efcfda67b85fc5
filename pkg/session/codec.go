package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shopdemo/authkit/pkg/token"
)

// claims is the signed payload carried by a session token. Identity fields
// stay on the server-side record; the token references it by session ID so
// the record remains the single source of truth and logout can revoke it.
type claims struct {
	SessionID string `json:"sid"`
	IssuedAt  int64  `json:"iat"`
	ExpireAt  int64  `json:"exp"`
}

// Codec mints and parses session tokens. A token is valid only if its
// HMAC signature verifies and its embedded expiry has not passed; record
// existence is checked separately by the Manager.
type Codec struct {
	secret string
}

// NewCodec creates a codec signing with the given secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Codec{secret: secret}, nil
}

// Mint encodes a signed token for the session, embedding its expiry.
func (c *Codec) Mint(s *Session) (string, error) {
	return token.Generate(claims{
		SessionID: s.ID.String(),
		IssuedAt:  s.CreatedAt.Unix(),
		ExpireAt:  s.ExpiresAt.Unix(),
	}, c.secret)
}

// Parse verifies the token and returns the referenced session ID. Expired
// tokens are rejected here, independent of any store state.
func (c *Codec) Parse(tok string) (uuid.UUID, error) {
	payload, err := token.Parse[claims](tok, c.secret)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}

	if time.Now().Unix() > payload.ExpireAt {
		return uuid.Nil, ErrSessionExpired
	}

	id, err := uuid.Parse(payload.SessionID)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}

	return id, nil
}
