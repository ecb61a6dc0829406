// Package credentials turns plaintext passwords into stored digests and
// verifies them. Two schemes exist: the legacy deterministic sha256 digest
// (compatible with digests already in the accounts table) and bcrypt.
// A deployment picks one scheme; digests do not verify across schemes.
package credentials

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// FromScheme maps a CREDENTIAL_SCHEME config value to a Hasher.
// Unknown or empty values fall back to sha256.
func FromScheme(scheme string) Hasher {
	if scheme == SchemeBcrypt {
		return &BcryptHasher{Cost: bcrypt.DefaultCost}
	}
	return &SHA256Hasher{}
}

// SHA256Hasher is a single-round unsalted digest. Same input always
// yields the same output, which is what keeps old stored digests valid.
type SHA256Hasher struct{}

func (h *SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h *SHA256Hasher) Verify(password, digest string) bool {
	sum := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(digest)) == 1
}

type BcryptHasher struct {
	Cost int
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
