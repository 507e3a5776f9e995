package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/gbanking/gbanking/internal/models"
)

// The digest algorithm is fixed by the on-disk credential format: both the
// legacy and the salted variant persist hex SHA-256. Changing it would
// orphan every existing row.

// GenerateSalt returns a fresh 16-byte salt, hex encoded (32 characters).
func GenerateSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// saltedHash computes SHA-256(saltHex + pin + pepper), hex encoded. The
// pepper keeps the salted output disjoint from legacy unsalted digests.
func saltedHash(pin, saltHex, pepper string) string {
	sum := sha256.Sum256([]byte(saltHex + pin + pepper))
	return hex.EncodeToString(sum[:])
}

// legacyHash computes the unsalted SHA-256(pin) of the first on-disk format.
func legacyHash(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// matches verifies a candidate PIN against a stored digest, dispatching on
// the digest variant decided at parse time.
func matches(d models.PINDigest, pin, pepper string) bool {
	switch d := d.(type) {
	case models.SaltedDigest:
		return saltedHash(pin, d.Salt, pepper) == d.Hash
	case models.LegacyDigest:
		return legacyHash(pin) == d.Hash
	default:
		return false
	}
}
