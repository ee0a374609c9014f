package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/argon2"
)

// Params tunes the Argon2id derivation used for account passwords.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

// DefaultParams follows the OWASP minimum for Argon2id.
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
}

// SaltSize is the number of random bytes behind every salt (base64url encoded).
const SaltSize = TokenSize128

// Credentials derives and verifies password digests. The salt is stored
// next to the digest on the account, the pepper never leaves the server.
//
// A Credentials value is immutable once built and safe for concurrent use.
type Credentials struct {
	pepper string
	params Params
}

// NewCredentials builds a Credentials keyed by pepper. A zero Params falls
// back to DefaultParams.
func NewCredentials(pepper string, params Params) (*Credentials, error) {
	if pepper == "" {
		return nil, errors.New("cryptox: empty pepper")
	}
	if params == (Params{}) {
		params = DefaultParams
	}
	if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 || params.KeyLength < 16 {
		return nil, errors.New("cryptox: invalid argon2 parameters")
	}
	return &Credentials{pepper: pepper, params: params}, nil
}

// MakeSalt returns a fresh random salt.
func (c *Credentials) MakeSalt() string {
	return MustGenerateToken(SaltSize)
}

// Hash derives the digest for plaintext under salt. The same inputs always
// produce the same digest. An empty plaintext or salt yields "", which
// never verifies.
func (c *Credentials) Hash(plaintext, salt string) string {
	if plaintext == "" || salt == "" {
		return ""
	}

	key := argon2.IDKey(
		[]byte(plaintext+c.pepper),
		[]byte(salt),
		c.params.Iterations,
		c.params.Memory,
		c.params.Parallelism,
		c.params.KeyLength,
	)
	return base64.RawStdEncoding.EncodeToString(key)
}

// Verify recomputes the digest for plaintext and salt and compares it to
// expected in constant time.
func (c *Credentials) Verify(plaintext, salt, expected string) bool {
	if expected == "" {
		return false
	}

	computed := c.Hash(plaintext, salt)
	if computed == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(expected)) == 1
}
