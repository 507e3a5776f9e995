package interfaces

import (
	"context"

	"github.com/gbanking/gbanking/internal/models"
	"github.com/shopspring/decimal"
)

// CredentialStore holds one credential row per normalized account name.
// Rows are append-only: there is no update or delete.
type CredentialStore interface {
	LookupCredential(name string) (models.Credential, bool, error)
	AppendCredential(cred models.Credential) error
}

// LedgerStore holds the current balance per account plus the append-only
// transaction history.
type LedgerStore interface {
	Balance(name string) (decimal.Decimal, bool, error)
	SetBalance(name string, balance decimal.Decimal) error
	AppendHistory(ctx context.Context, rec models.HistoryRecord) error
	HistoryByAccount(name string) ([]models.HistoryRecord, error)
}
