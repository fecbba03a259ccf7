package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not match its stored form.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordHasher turns passwords into their stored form and checks them.
// With hashing disabled the stored form is the plaintext password.
//
// bcrypt reads at most 72 bytes, so the password is first reduced to the
// base64 SHA-256 digest (44 bytes). Passwords of any length hash, and two long
// passwords sharing a 72-byte prefix do not collide.
type PasswordHasher struct {
	cost    int
	enabled bool
}

// NewPasswordHasher builds a hasher. cost falls back to bcrypt's default when out of range.
func NewPasswordHasher(enabled bool, cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost, enabled: enabled}
}

// Hash returns the form of password to persist.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if !h.enabled {
		return password, nil
	}
	hashed, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare verifies a password against its stored value.
func (h *PasswordHasher) Compare(stored, plain string) error {
	if !h.enabled {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) != 1 {
			return ErrPasswordMismatch
		}
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), prehash(plain)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
