package models

// Credential is one stored (name, PIN digest) pair.
// The account's display name doubles as its unique key.
type Credential struct {
	Name   string
	Digest PINDigest
}

// PINDigest is the stored form of an account PIN. Two variants exist:
// SaltedDigest for rows written by current versions, and LegacyDigest for
// rows that predate per-account salts. The variant is decided once, when a
// row is parsed, so verification code dispatches on the concrete type
// instead of sniffing for an empty salt column.
type PINDigest interface {
	// Columns returns the salt and hash exactly as persisted.
	// Salt is empty for legacy digests.
	Columns() (salt, hash string)
}

// SaltedDigest is SHA-256(saltHex + pin + pepper), hex encoded.
type SaltedDigest struct {
	Salt string
	Hash string
}

func (d SaltedDigest) Columns() (string, string) { return d.Salt, d.Hash }

// LegacyDigest is the unsalted SHA-256(pin) kept for rows written by the
// first on-disk format. It is a migration shim, not a security feature:
// legacy hashes are cheaper to crack, and rows are never upgraded in place.
type LegacyDigest struct {
	Hash string
}

func (d LegacyDigest) Columns() (string, string) { return "", d.Hash }

// ParseDigest builds the right digest variant from persisted columns.
// This is the only place where the empty-salt convention is interpreted.
func ParseDigest(salt, hash string) PINDigest {
	if salt == "" {
		return LegacyDigest{Hash: hash}
	}
	return SaltedDigest{Salt: salt, Hash: hash}
}
