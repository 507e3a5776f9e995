// Package auth implements account registration and PIN login on top of a
// CredentialStore, combined with the session lockout guard.
package auth

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gbanking/gbanking/internal/interfaces"
	"github.com/gbanking/gbanking/internal/models"
	"github.com/gbanking/gbanking/internal/session"
)

// Service verifies and registers account credentials.
type Service struct {
	store  interfaces.CredentialStore
	guard  *session.Guard
	pepper string
	now    func() time.Time
}

// NewService wires a credential store and lockout guard. The pepper is the
// shared secret mixed into salted digests; it must stay stable across runs
// or existing salted rows stop verifying.
func NewService(store interfaces.CredentialStore, guard *session.Guard, pepper string) *Service {
	return &Service{store: store, guard: guard, pepper: pepper, now: time.Now}
}

// NormalizeName trims and title-cases a display name. The normalized form is
// the account's unique key everywhere in the system.
func NormalizeName(name string) string {
	n := cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(name)))
	// The title caser keeps "o'neil" as a single word. Stored rows use the
	// "O'Neil" form, so uppercase the letter following an apostrophe.
	var b strings.Builder
	b.Grow(len(n))
	upper := false
	for _, r := range n {
		if upper {
			r = unicode.ToUpper(r)
		}
		upper = r == '\''
		b.WriteRune(r)
	}
	return b.String()
}

func validName(name string) bool {
	first, _ := utf8.DecodeRuneInString(name)
	if name == "" || !unicode.IsLetter(first) {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Register creates a new credential with a fresh salt and returns the
// normalized account name.
func (s *Service) Register(name, pin string) (string, error) {
	name = NormalizeName(name)
	if !validName(name) {
		return "", ErrInvalidName
	}
	if !validPIN(pin) {
		return "", ErrInvalidPIN
	}

	_, found, err := s.store.LookupCredential(name)
	if err != nil {
		return "", fmt.Errorf("lookup credential: %w", err)
	}
	if found {
		return "", ErrAlreadyExists
	}

	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	cred := models.Credential{
		Name:   name,
		Digest: models.SaltedDigest{Salt: salt, Hash: saltedHash(pin, salt, s.pepper)},
	}
	if err := s.store.AppendCredential(cred); err != nil {
		return "", fmt.Errorf("append credential: %w", err)
	}
	return name, nil
}

// Login checks the lockout guard, then verifies the PIN against the stored
// digest. A wrong PIN counts toward the lockout threshold; an unknown name
// does not. On success the failure counter is cleared.
func (s *Service) Login(name, pin string) (string, error) {
	name = NormalizeName(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if !validPIN(pin) {
		return "", ErrInvalidPIN
	}

	now := s.now()
	if locked, until := s.guard.CheckLocked(name, now); locked {
		return "", &LockedOutError{Until: until}
	}

	cred, found, err := s.store.LookupCredential(name)
	if err != nil {
		return "", fmt.Errorf("lookup credential: %w", err)
	}
	if !found {
		return "", ErrNotFound
	}

	if !matches(cred.Digest, pin, s.pepper) {
		s.guard.RecordFailure(name, now)
		return "", ErrWrongPIN
	}

	s.guard.RecordSuccess(name)
	return name, nil
}
