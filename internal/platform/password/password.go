// Package password provides one-way password hashing and verification.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords using bcrypt. The cost is fixed at
// construction so every request shares the same work factor.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted bcrypt hash from the plaintext. Two calls with the
// same input produce different hashes; both verify against the original.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext produced the stored hash. A malformed
// hash fails closed: the answer is false, never an error surfaced to the
// caller.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DummyHash is a valid bcrypt hash of a random string. Login flows compare
// against it when no user matches the email, so the response time does not
// reveal whether the account exists.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
