package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when the caller does not
// supply one. Each +1 doubles the hashing time.
const DefaultHashCost = 12

// HashPassword hashes a plaintext password with bcrypt. Every call embeds a
// fresh random salt, so hashing the same input twice yields different
// encoded strings. A cost of 0 selects DefaultHashCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultHashCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("cryptox: bcrypt cost %d out of range", cost)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt hash. The
// comparison is constant-time within bcrypt, and malformed hash input
// yields false rather than an error or panic.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
