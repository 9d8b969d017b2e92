package otp

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// secretSize is the number of random bytes in a generated secret (160 bits,
// the RFC 4226 recommended minimum shared secret length).
const secretSize = 20

// secretEncoding is the canonical transport encoding for secrets: unpadded
// upper-case base32, the form authenticator apps expect.
var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Secret is an immutable shared secret: the raw key material together with
// its canonical base32 encoding. The zero value is invalid; obtain a Secret
// from NewSecret, SecretFromBytes, or GenerateSecret.
type Secret struct {
	raw     []byte
	encoded string
}

// NewSecret decodes a base32-encoded secret. The input is normalized before
// decoding: spaces are stripped, letters are upper-cased, and trailing
// padding is ignored, so secrets in the grouped lowercase form presented by
// 2FA setup tools decode cleanly.
func NewSecret(encoded string) (Secret, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(encoded, " ", ""))
	normalized = strings.TrimRight(normalized, "=")
	if normalized == "" {
		return Secret{}, fmt.Errorf("%w: secret must not be empty", ErrInvalidSecret)
	}

	raw, err := secretEncoding.DecodeString(normalized)
	if err != nil {
		return Secret{}, fmt.Errorf("%w: secret must be valid base32: %v", ErrInvalidSecret, err)
	}

	return Secret{raw: raw, encoded: normalized}, nil
}

// SecretFromBytes wraps caller-supplied raw key material.
// The bytes are copied; the caller's slice is not retained.
func SecretFromBytes(raw []byte) Secret {
	key := make([]byte, len(raw))
	copy(key, raw)
	return Secret{raw: key, encoded: secretEncoding.EncodeToString(key)}
}

// GenerateSecret generates a cryptographically random secret key.
// A randomness-source failure is fatal; there is no fallback.
func GenerateSecret() (Secret, error) {
	raw := make([]byte, secretSize)
	if _, err := rand.Read(raw); err != nil {
		return Secret{}, fmt.Errorf("otp: failed to generate random secret: %w", err)
	}
	return Secret{raw: raw, encoded: secretEncoding.EncodeToString(raw)}, nil
}

// String returns the canonical base32 encoding of the secret.
func (s Secret) String() string {
	return s.encoded
}

// Bytes returns a copy of the raw key material.
func (s Secret) Bytes() []byte {
	raw := make([]byte, len(s.raw))
	copy(raw, s.raw)
	return raw
}

// IsZero reports whether s is the invalid zero value.
func (s Secret) IsZero() bool {
	return len(s.raw) == 0
}
