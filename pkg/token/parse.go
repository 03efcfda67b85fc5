package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Parse verifies the token signature and decodes the JSON payload into T.
// The payload is not decoded unless the signature verifies.
func Parse[T any](tok string, secret string) (T, error) {
	var payload T

	payloadEnc, sigEnc, ok := strings.Cut(tok, ".")
	if !ok {
		return payload, ErrInvalidToken
	}

	data, err := base64.RawURLEncoding.DecodeString(payloadEnc)
	if err != nil {
		return payload, ErrInvalidToken
	}

	sig, err := base64.RawURLEncoding.DecodeString(sigEnc)
	if err != nil {
		return payload, ErrInvalidToken
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	expected := h.Sum(nil)

	if subtle.ConstantTimeCompare(sig, expected) != 1 {
		return payload, ErrSignatureInvalid
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, ErrInvalidToken
	}

	return payload, nil
}
