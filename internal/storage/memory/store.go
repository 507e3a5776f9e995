// Package memory provides map-backed stores with no persistence. They back
// the test suites and the "memory" storage driver.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/gbanking/gbanking/internal/interfaces"
	"github.com/gbanking/gbanking/internal/models"
)

// Store implements both CredentialStore and LedgerStore in memory.
type Store struct {
	mu          sync.Mutex
	credentials map[string]models.Credential
	balances    map[string]decimal.Decimal
	history     []models.HistoryRecord
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		credentials: make(map[string]models.Credential),
		balances:    make(map[string]decimal.Decimal),
	}
}

func (s *Store) LookupCredential(name string) (models.Credential, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.credentials[name]
	return cred, ok, nil
}

func (s *Store) AppendCredential(cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credentials[cred.Name] = cred
	return nil
}

func (s *Store) Balance(name string) (decimal.Decimal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bal, ok := s.balances[name]
	if !ok {
		return decimal.Zero, false, nil
	}
	return bal, true, nil
}

func (s *Store) SetBalance(name string, balance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[name] = balance
	return nil
}

func (s *Store) AppendHistory(_ context.Context, rec models.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, rec)
	return nil
}

// HistoryByAccount returns copies in insertion order, the equivalent of file
// order in the CSV backend.
func (s *Store) HistoryByAccount(name string) ([]models.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.HistoryRecord
	for _, r := range s.history {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out, nil
}

var (
	_ interfaces.CredentialStore = (*Store)(nil)
	_ interfaces.LedgerStore     = (*Store)(nil)
)
